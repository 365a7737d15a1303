package render

import gomath "math"

// Glyphs are the characters used to draw a frame.
type Glyphs struct {
	Low    rune // interior cell with coverage below one half
	High   rune // interior cell with coverage of one half or more
	Vertex rune // projected vertex / line endpoint
	Center rune // viewport centre marker
}

// DefaultGlyphs returns the standard glyph set.
func DefaultGlyphs() Glyphs {
	return Glyphs{Low: '-', High: '*', Vertex: '@', Center: 'X'}
}

// Rasterizer draws anti-aliased lines between projected points.
//
// It is a two-level reduction of Wu's algorithm: each interior column gets a
// single glyph whose weight follows the fractional coverage of the ideal line.
type Rasterizer struct {
	grid   Grid
	view   Viewport
	glyphs Glyphs
}

// NewRasterizer returns a Rasterizer writing to grid through view.
func NewRasterizer(grid Grid, view Viewport, glyphs Glyphs) *Rasterizer {
	return &Rasterizer{grid: grid, view: view, glyphs: glyphs}
}

// Viewport returns the viewport the rasterizer writes through.
func (r *Rasterizer) Viewport() Viewport {
	return r.view
}

// SetViewport replaces the viewport, e.g. after the display was resized.
func (r *Rasterizer) SetViewport(view Viewport) {
	r.view = view
}

// Glyphs returns the glyph set in use.
func (r *Rasterizer) Glyphs() Glyphs {
	return r.glyphs
}

// DrawLine draws the interior of segment a-b and then both endpoint markers.
func (r *Rasterizer) DrawLine(a, b ScreenPoint) {
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y

	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := y1 - y0

	// A zero dx only happens for a single point here; the loop below is
	// empty in that case so the fallback value is never used to step.
	gradient := 1.0
	if dx != 0 {
		gradient = float64(dy) / float64(dx)
	}

	// Only the stretch of the major axis that lands on the grid is walked.
	first, last := x0+1, x1-1
	span := r.view.xSpan
	if steep {
		span = r.view.ySpan
	}
	if lo, hi, bounded := span(); bounded {
		first = max(first, lo)
		last = min(last, hi)
	}

	intery := float64(y0) + gradient
	if skipped := first - (x0 + 1); skipped > 0 {
		intery += gradient * float64(skipped)
	}
	for x := first; x <= last; x++ {
		whole := gomath.Floor(intery)
		brightness := 1 - (intery - whole)

		glyph := r.glyphs.High
		if brightness < 0.5 {
			glyph = r.glyphs.Low
		}

		if steep {
			r.plot(int(whole), x, glyph)
		} else {
			r.plot(x, int(whole), glyph)
		}
		intery += gradient
	}

	r.DrawMarker(a)
	r.DrawMarker(b)
}

// DrawMarker draws the vertex glyph at p.
func (r *Rasterizer) DrawMarker(p ScreenPoint) {
	r.plot(p.X, p.Y, r.glyphs.Vertex)
}

// DrawCenter draws the centre marker.
func (r *Rasterizer) DrawCenter() {
	r.plot(0, 0, r.glyphs.Center)
}

func (r *Rasterizer) plot(x, y int, c rune) {
	row, col := r.view.Cell(x, y)
	r.grid.SetCell(row, col, c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
