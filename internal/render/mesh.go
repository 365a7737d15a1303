package render

import (
	"errors"
	"fmt"

	"github.com/Faultbox/wirespin/pkg/math"
)

// ErrVertexIndex is returned when a face refers to a vertex that does not exist.
var ErrVertexIndex = errors.New("face vertex index out of range")

// Edge is a pair of vertex indices into the owning Mesh.
type Edge struct {
	A, B int
}

// Face is a closed polygon outline over shared mesh vertices.
type Face struct {
	indices []int
}

// Len returns the number of vertices in the face.
func (f Face) Len() int {
	return len(f.indices)
}

// Index returns the mesh vertex index of the i-th corner.
func (f Face) Index(i int) (int, bool) {
	if i < 0 || i >= len(f.indices) {
		return 0, false
	}
	return f.indices[i], true
}

// Edges returns the outline of the face: each consecutive pair followed by
// the closing edge from the last corner back to the first. A one-vertex face
// yields a single degenerate edge; an empty face yields none.
func (f Face) Edges() []Edge {
	n := len(f.indices)
	if n == 0 {
		return nil
	}
	edges := make([]Edge, 0, n)
	for i := 0; i < n-1; i++ {
		edges = append(edges, Edge{f.indices[i], f.indices[i+1]})
	}
	return append(edges, Edge{f.indices[n-1], f.indices[0]})
}

// Mesh is a fixed set of vertices and the faces that index them.
type Mesh struct {
	vertices []math.Vec3
	faces    []Face
}

// NewMesh builds a Mesh from vertices and faces given as 1-based vertex
// indices, as they appear in mesh sources. Every index is checked.
func NewMesh(vertices []math.Vec3, faces [][]int) (*Mesh, error) {
	m := &Mesh{
		vertices: append([]math.Vec3(nil), vertices...),
		faces:    make([]Face, len(faces)),
	}

	for fi, src := range faces {
		indices := make([]int, len(src))
		for i, idx := range src {
			if idx < 1 || idx > len(vertices) {
				return nil, fmt.Errorf("face %d corner %d: %w: %d (have %d vertices)",
					fi+1, i+1, ErrVertexIndex, idx, len(vertices))
			}
			indices[i] = idx - 1
		}
		m.faces[fi] = Face{indices: indices}
	}

	return m, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.faces)
}

// Vertex returns the i-th vertex.
func (m *Mesh) Vertex(i int) (math.Vec3, bool) {
	if i < 0 || i >= len(m.vertices) {
		return math.Vec3{}, false
	}
	return m.vertices[i], true
}

// Faces returns the faces of the mesh. The slice must not be modified.
func (m *Mesh) Faces() []Face {
	return m.faces
}

// EdgeCount returns how many edges one full draw of the mesh rasterizes.
func (m *Mesh) EdgeCount() int {
	n := 0
	for _, f := range m.faces {
		n += len(f.Edges())
	}
	return n
}
