package chart

// Braille dot bits by (row in 0..3, column in 0..1) within one cell.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Plot renders values as a braille line chart of width×height cells,
// scaled vertically to the NiceDomain of the data so the axis bounds look
// round. cursor, when in range, is a point index marked with a full
// vertical dotted line. Returns height lines of width runes each; styling
// is left to the caller.
func Plot(values []float64, width, height, cursor int) []string {
	if width < 1 || height < 1 || len(values) == 0 {
		return nil
	}

	cols := width * 2
	rows := height * 4

	lo, hi := PlotDomain(values)

	// Map a value to a dot row, top row zero.
	toRow := func(v float64) int {
		r := int((hi - v) / (hi - lo) * float64(rows-1))
		if r < 0 {
			r = 0
		}
		if r > rows-1 {
			r = rows - 1
		}
		return r
	}

	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
	}

	n := len(values)
	prevRow := -1
	for x := 0; x < cols; x++ {
		idx := 0
		if cols > 1 {
			idx = x * (n - 1) / (cols - 1)
		}
		row := toRow(values[idx])
		grid[row][x] = true
		// Connect to the previous column so the line stays continuous.
		if prevRow >= 0 && abs(row-prevRow) > 1 {
			top, bottom := prevRow, row
			if top > bottom {
				top, bottom = bottom, top
			}
			for r := top + 1; r < bottom; r++ {
				grid[r][x] = true
			}
		}
		prevRow = row
	}

	if cursor >= 0 && cursor < n {
		x := 0
		if n > 1 {
			x = cursor * (cols - 1) / (n - 1)
		}
		for r := 0; r < rows; r += 2 {
			grid[r][x] = true
		}
	}

	lines := make([]string, height)
	for cy := 0; cy < height; cy++ {
		line := make([]rune, width)
		for cx := 0; cx < width; cx++ {
			cell := rune(brailleBase)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if grid[cy*4+dy][cx*2+dx] {
						cell |= brailleBits[dy][dx]
					}
				}
			}
			line[cx] = cell
		}
		lines[cy] = string(line)
	}
	return lines
}

// PlotDomain returns the rounded axis bounds the plot is scaled to.
func PlotDomain(values []float64) (float64, float64) {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	lo, hi := NiceDomain(min, max, DefaultTickCount)
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
