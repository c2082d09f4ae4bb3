package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNiceDomain_EqualBounds(t *testing.T) {
	lo, hi := NiceDomain(42.3, 42.3, 5)
	assert.Equal(t, 42.0, lo)
	assert.Equal(t, 43.0, hi)
}

func TestNiceDomain_SnapsOutward(t *testing.T) {
	cases := []struct {
		name     string
		min, max float64
	}{
		{"small range", 0.3, 0.9},
		{"unit range", 0.0, 1.0},
		{"portfolio values", 10432.18, 11219.54},
		{"negative values", -523.4, -17.9},
		{"crossing zero", -3.2, 7.8},
		{"large values", 1_000_000, 1_234_567},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := NiceDomain(tc.min, tc.max, 5)
			assert.LessOrEqual(t, lo, tc.min)
			assert.GreaterOrEqual(t, hi, tc.max)

			// The span must be a whole number of power-of-ten-scaled steps.
			raw := (tc.max - tc.min) / 5
			magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
			step := math.Ceil(raw/magnitude) * magnitude
			steps := (hi - lo) / step
			assert.InDelta(t, math.Round(steps), steps, 1e-9)
		})
	}
}

func TestNiceDomain_Deterministic(t *testing.T) {
	lo1, hi1 := NiceDomain(97.3, 184.9, 5)
	lo2, hi2 := NiceDomain(97.3, 184.9, 5)
	assert.Equal(t, lo1, lo2)
	assert.Equal(t, hi1, hi2)
}

func TestNiceDomain_ZeroTickCountDefaults(t *testing.T) {
	lo, hi := NiceDomain(0, 100, 0)
	assert.LessOrEqual(t, lo, 0.0)
	assert.GreaterOrEqual(t, hi, 100.0)
}

func TestNiceDomain_ReversedInputs(t *testing.T) {
	lo, hi := NiceDomain(100, 0, 5)
	assert.LessOrEqual(t, lo, 0.0)
	assert.GreaterOrEqual(t, hi, 100.0)
}
