// Package formats provides loaders for the mesh sources the renderer consumes.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/wirespin/pkg/math"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Model is a parsed mesh source: vertices in declaration order and faces as
// lists of 1-based indices into Vertices.
type Model struct {
	Vertices []math.Vec3
	Faces    [][]int
}

// VertexCount returns the number of vertices.
func (m *Model) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Model) FaceCount() int {
	return len(m.Faces)
}

// Scale multiplies every vertex coordinate by s in place.
func (m *Model) Scale(s float64) {
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Scale(s)
	}
}

// Bounds returns the axis-aligned bounding box of the model.
func (m *Model) Bounds() (lo, hi math.Vec3) {
	return math.Bounds(m.Vertices)
}

// Load reads a mesh source from disk, choosing the loader by extension.
func Load(path string) (*Model, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
