package render

import "strings"

// Grid is a character display addressed by (row, column).
// Writes outside the grid are ignored by implementations.
type Grid interface {
	SetCell(row, col int, r rune)
}

// Viewport places logical screen offsets on a Grid. Columns are doubled
// because terminal cells are roughly twice as tall as they are wide.
// A zero Width or Height leaves that axis unbounded.
type Viewport struct {
	CenterX, CenterY int
	Width, Height    int
}

// ViewportFor derives the viewport centre from display dimensions.
func ViewportFor(width, height int) Viewport {
	return Viewport{CenterX: width / 4, CenterY: height / 2, Width: width, Height: height}
}

// xSpan returns the logical x range whose cells land inside the grid.
func (v Viewport) xSpan() (lo, hi int, bounded bool) {
	if v.Width <= 0 {
		return 0, 0, false
	}
	return -v.CenterX, (v.Width-1)/2 - v.CenterX, true
}

// ySpan returns the logical y range whose cells land inside the grid.
func (v Viewport) ySpan() (lo, hi int, bounded bool) {
	if v.Height <= 0 {
		return 0, 0, false
	}
	return -v.CenterY, v.Height - 1 - v.CenterY, true
}

// Cell converts a logical offset into a grid cell.
func (v Viewport) Cell(x, y int) (row, col int) {
	return y + v.CenterY, (x + v.CenterX) * 2
}

// DrawText writes s on grid starting at (row, col), one rune per cell.
func DrawText(g Grid, row, col int, s string) {
	for _, r := range s {
		g.SetCell(row, col, r)
		col++
	}
}

// Canvas is an in-memory Grid.
type Canvas struct {
	width, height int
	cells         []rune
}

// NewCanvas returns a blank canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: width, height: height, cells: make([]rune, width*height)}
	c.Clear()
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// SetCell implements Grid.
func (c *Canvas) SetCell(row, col int, r rune) {
	if row < 0 || col < 0 || row >= c.height || col >= c.width {
		return
	}
	c.cells[row*c.width+col] = r
}

// Cell returns the rune at (row, col), or 0 outside the canvas.
func (c *Canvas) Cell(row, col int) rune {
	if row < 0 || col < 0 || row >= c.height || col >= c.width {
		return 0
	}
	return c.cells[row*c.width+col]
}

// Clear fills the canvas with spaces.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = ' '
	}
}

// String renders the canvas as newline separated rows.
func (c *Canvas) String() string {
	var sb strings.Builder
	for row := 0; row < c.height; row++ {
		sb.WriteString(string(c.cells[row*c.width : (row+1)*c.width]))
		sb.WriteByte('\n')
	}
	return sb.String()
}
