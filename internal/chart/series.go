package chart

import (
	"sort"
	"time"

	"github.com/foliodash/folio/internal/api"
)

// Point is one parsed sample of the portfolio value series.
type Point struct {
	Time  time.Time
	Value float64
}

// Series is a portfolio value history, sorted ascending by time.
// Duplicate timestamps are kept as delivered.
type Series struct {
	Points []Point
}

// Metrics are the derived display values for one reference point measured
// against the series' first point.
type Metrics struct {
	Value     float64
	Change    float64
	ChangePct float64
}

// timestampLayouts are the formats the backend has been seen emitting:
// RFC3339 with offset and bare isoformat without one.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BuildSeries parses raw history points into a time-sorted series.
// Samples with unparseable timestamps are dropped.
func BuildSeries(raw []api.HistoryPoint) Series {
	points := make([]Point, 0, len(raw))
	for _, hp := range raw {
		t, ok := parseTimestamp(hp.Timestamp)
		if !ok {
			continue
		}
		points = append(points, Point{Time: t, Value: hp.MarketValue})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return Series{Points: points}
}

// Empty reports whether the series has no points.
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// At derives display metrics for the point at index i relative to the
// series' first point. The series itself is never mutated.
func (s Series) At(i int) Metrics {
	if s.Empty() || i < 0 || i >= len(s.Points) {
		return Metrics{}
	}
	first := s.Points[0].Value
	value := s.Points[i].Value
	change := value - first
	var pct float64
	if first != 0 {
		pct = change / first * 100
	}
	return Metrics{Value: value, Change: change, ChangePct: pct}
}

// Latest derives display metrics for the newest point.
func (s Series) Latest() Metrics {
	return s.At(len(s.Points) - 1)
}

// Gaining reports whether the last value is at or above the first,
// selecting the gain palette over the loss palette.
func (s Series) Gaining() bool {
	if s.Empty() {
		return true
	}
	return s.Points[len(s.Points)-1].Value >= s.Points[0].Value
}

// MinMax returns the smallest and largest values in the series.
func (s Series) MinMax() (float64, float64) {
	if s.Empty() {
		return 0, 0
	}
	min, max := s.Points[0].Value, s.Points[0].Value
	for _, p := range s.Points[1:] {
		if p.Value < min {
			min = p.Value
		}
		if p.Value > max {
			max = p.Value
		}
	}
	return min, max
}
