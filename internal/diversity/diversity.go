// Package diversity turns raw holdings into the slices behind the
// holdings-diversity breakdown: values normalized and rounded, small
// holdings merged into a trailing "Other" bucket, and a green gradient
// keyed to each slice's share.
package diversity

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/foliodash/folio/internal/api"
)

// OtherName is the display name of the merged small-holdings bucket.
const OtherName = "Other"

// DefaultThresholdPct is the share below which a holding folds into Other.
const DefaultThresholdPct = 2.0

// Slice is one wedge of the breakdown: a single holding, or the Other
// bucket aggregating everything under the threshold.
type Slice struct {
	Name    string
	Value   float64
	Pct     float64
	Rank    int
	IsOther bool
}

// Breakdown is the aggregated result for one poll of the holdings.
type Breakdown struct {
	Slices []Slice
	Total  float64
}

// Empty reports whether there is nothing to draw.
func (b Breakdown) Empty() bool {
	return len(b.Slices) == 0
}

// Equal compares two breakdowns structurally. The widget only commits a
// recompute when this returns false, so unchanged polls never re-render.
func (b Breakdown) Equal(other Breakdown) bool {
	if b.Total != other.Total || len(b.Slices) != len(other.Slices) {
		return false
	}
	for i := range b.Slices {
		if b.Slices[i] != other.Slices[i] {
			return false
		}
	}
	return true
}

// round2 rounds to cents.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// holdingValue normalizes one holding: reported market value, else
// quantity times current price, else zero.
func holdingValue(h api.Holding) float64 {
	if h.MarketValue != 0 {
		return round2(h.MarketValue)
	}
	return round2(h.Quantity * h.CurrentPrice)
}

// Aggregate builds a breakdown from raw holdings. Holdings are sorted
// descending by value; any holding whose share of the total is below
// thresholdPct merges into a single trailing Other slice, omitted when
// its sum is zero. The sum of slice values equals the sum of input values
// within floating rounding.
func Aggregate(holdings []api.Holding, thresholdPct float64) Breakdown {
	if thresholdPct <= 0 {
		thresholdPct = DefaultThresholdPct
	}

	type valued struct {
		name  string
		value float64
	}
	vals := make([]valued, 0, len(holdings))
	var total float64
	for _, h := range holdings {
		name := h.Name
		if name == "" {
			name = h.Ticker
		}
		v := holdingValue(h)
		vals = append(vals, valued{name: name, value: v})
		total += v
	}
	total = round2(total)
	if total == 0 {
		return Breakdown{}
	}

	sort.SliceStable(vals, func(i, j int) bool {
		return vals[i].value > vals[j].value
	})

	var slices []Slice
	var otherSum float64
	for _, v := range vals {
		pct := v.value / total * 100
		if pct < thresholdPct {
			otherSum += v.value
			continue
		}
		slices = append(slices, Slice{
			Name:  v.name,
			Value: v.value,
			Pct:   pct,
			Rank:  len(slices),
		})
	}

	if otherSum != 0 {
		otherSum = round2(otherSum)
		slices = append(slices, Slice{
			Name:    OtherName,
			Value:   otherSum,
			Pct:     otherSum / total * 100,
			Rank:    len(slices),
			IsOther: true,
		})
	}

	return Breakdown{Slices: slices, Total: total}
}
