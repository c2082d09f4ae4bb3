package diversity

import colorful "github.com/lucasb-eyer/go-colorful"

// The gradient is hue-fixed green; share drives saturation and lightness
// so bigger holdings read darker and more saturated.
const (
	gradientHue = 140.0

	minSaturation = 0.35
	maxSaturation = 0.80
	maxLightness  = 0.68
	minLightness  = 0.34

	// OtherColor is the fixed neutral gray for the Other bucket.
	OtherColor = "#9ca3af"
)

// Colors returns one hex color per slice, index-aligned with the input.
// Non-Other slices interpolate between the dataset's minimum and maximum
// non-Other share; Other always renders gray.
func Colors(slices []Slice) []string {
	minPct, maxPct := shareRange(slices)

	colors := make([]string, len(slices))
	for i, s := range slices {
		if s.IsOther {
			colors[i] = OtherColor
			continue
		}
		t := 1.0
		if maxPct > minPct {
			t = (s.Pct - minPct) / (maxPct - minPct)
		}
		c := colorful.Hsl(
			gradientHue,
			minSaturation+t*(maxSaturation-minSaturation),
			maxLightness-t*(maxLightness-minLightness),
		)
		colors[i] = c.Hex()
	}
	return colors
}

// shareRange returns the min and max percentage share among non-Other
// slices.
func shareRange(slices []Slice) (float64, float64) {
	first := true
	var min, max float64
	for _, s := range slices {
		if s.IsOther {
			continue
		}
		if first {
			min, max = s.Pct, s.Pct
			first = false
			continue
		}
		if s.Pct < min {
			min = s.Pct
		}
		if s.Pct > max {
			max = s.Pct
		}
	}
	return min, max
}
