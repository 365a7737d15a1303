package render

import "fmt"

// FrameStats counts what one draw pass produced.
type FrameStats struct {
	Faces  int // faces visited
	Edges  int // edges rasterized
	Points int // vertex markers drawn in vertex mode
	Culled int // projections skipped by DepthCull
}

// Renderer projects mesh geometry at an explicit rotation and rasterizes it.
// Projections are recomputed on every call; nothing is cached between frames.
type Renderer struct {
	proj    Projector
	rast    *Rasterizer
	corners []ScreenPoint
	visible []bool
}

// NewRenderer returns a Renderer drawing with proj and rast.
func NewRenderer(proj Projector, rast *Rasterizer) *Renderer {
	return &Renderer{proj: proj, rast: rast}
}

// Rasterizer returns the rasterizer frames are drawn with.
func (r *Renderer) Rasterizer() *Rasterizer {
	return r.rast
}

// DrawFace draws the closed outline of f at the given rotation.
// An empty face draws nothing. Edges touching a culled corner are skipped.
func (r *Renderer) DrawFace(m *Mesh, f Face, rotation float64) (FrameStats, error) {
	var stats FrameStats
	n := f.Len()
	if n == 0 {
		return stats, nil
	}

	r.corners = r.corners[:0]
	r.visible = r.visible[:0]
	for i := 0; i < n; i++ {
		idx, _ := f.Index(i)
		v, ok := m.Vertex(idx)
		if !ok {
			return stats, fmt.Errorf("corner %d: %w: %d", i, ErrVertexIndex, idx)
		}
		sp, vis, err := r.proj.Project(v, rotation)
		if err != nil {
			return stats, fmt.Errorf("vertex %d: %w", idx+1, err)
		}
		if !vis {
			stats.Culled++
		}
		r.corners = append(r.corners, sp)
		r.visible = append(r.visible, vis)
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if !r.visible[i] || !r.visible[j] {
			continue
		}
		// The closing edge runs from the last corner back to the first.
		r.rast.DrawLine(r.corners[i], r.corners[j])
		stats.Edges++
	}
	return stats, nil
}

// DrawMesh draws every face of m.
func (r *Renderer) DrawMesh(m *Mesh, rotation float64) (FrameStats, error) {
	var total FrameStats
	for i, f := range m.Faces() {
		stats, err := r.DrawFace(m, f, rotation)
		if err != nil {
			return total, fmt.Errorf("face %d: %w", i+1, err)
		}
		total.Faces++
		total.Edges += stats.Edges
		total.Culled += stats.Culled
	}
	return total, nil
}

// DrawVertices draws only a marker for each vertex of m.
func (r *Renderer) DrawVertices(m *Mesh, rotation float64) (FrameStats, error) {
	var stats FrameStats
	for i := 0; i < m.VertexCount(); i++ {
		v, _ := m.Vertex(i)
		sp, vis, err := r.proj.Project(v, rotation)
		if err != nil {
			return stats, fmt.Errorf("vertex %d: %w", i+1, err)
		}
		if !vis {
			stats.Culled++
			continue
		}
		r.rast.DrawMarker(sp)
		stats.Points++
	}
	return stats, nil
}
