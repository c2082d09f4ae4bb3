// Package chart holds the pure math behind the history chart: axis domain
// rounding, timeframe definitions, series metrics and a braille plotter.
package chart

import "math"

// DefaultTickCount is the tick count used when callers pass zero.
const DefaultTickCount = 5

// NiceDomain maps a data range to human-friendly rounded axis bounds.
// The step is the range divided into roughly tickCount divisions, rounded
// up to a multiple of its power of ten; both bounds snap outward to step
// multiples. Equal inputs collapse to [floor(min), ceil(max)].
func NiceDomain(min, max float64, tickCount int) (float64, float64) {
	if tickCount <= 0 {
		tickCount = DefaultTickCount
	}
	if min > max {
		min, max = max, min
	}
	if min == max {
		return math.Floor(min), math.Ceil(max)
	}

	raw := (max - min) / float64(tickCount)
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	step := math.Ceil(raw/magnitude) * magnitude

	lower := math.Floor(min/step) * step
	upper := math.Ceil(max/step) * step
	return lower, upper
}
