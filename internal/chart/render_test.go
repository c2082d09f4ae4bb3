package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlot_Dimensions(t *testing.T) {
	values := []float64{100, 105, 103, 110, 95}
	lines := Plot(values, 40, 8, -1)
	require.Len(t, lines, 8)
	for _, line := range lines {
		assert.Equal(t, 40, len([]rune(line)))
	}
}

func TestPlot_EmptyInputs(t *testing.T) {
	assert.Nil(t, Plot(nil, 40, 8, -1))
	assert.Nil(t, Plot([]float64{1}, 0, 8, -1))
	assert.Nil(t, Plot([]float64{1}, 40, 0, -1))
}

func TestPlot_SinglePointIsFlatLine(t *testing.T) {
	lines := Plot([]float64{100}, 10, 4, -1)
	require.Len(t, lines, 4)

	nonEmpty := 0
	for _, line := range lines {
		for _, r := range line {
			if r != rune(brailleBase) {
				nonEmpty++
				break
			}
		}
	}
	// A flat series occupies exactly one cell row.
	assert.Equal(t, 1, nonEmpty)
}

func TestPlot_CursorMarksColumn(t *testing.T) {
	values := []float64{100, 100, 100, 100, 100}
	plain := Plot(values, 10, 4, -1)
	cursored := Plot(values, 10, 4, 0)
	assert.NotEqual(t, plain, cursored)
}

func TestPlotDomain_CoversValues(t *testing.T) {
	values := []float64{97.4, 132.8, 121.0}
	lo, hi := PlotDomain(values)
	assert.LessOrEqual(t, lo, 97.4)
	assert.GreaterOrEqual(t, hi, 132.8)
	assert.Greater(t, hi, lo)
}

func TestTimeframes_Fixed(t *testing.T) {
	require.Len(t, Timeframes, 6)
	assert.Equal(t, "1D", Timeframes[0].Label)
	assert.Equal(t, "day", Timeframes[0].Span)
	assert.Equal(t, "5minute", Timeframes[0].Interval)
	assert.Equal(t, "ALL", Timeframes[len(Timeframes)-1].Label)
}
