package formats

import (
	"errors"
	"fmt"
	"io"
	gomath "math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/wirespin/pkg/math"
)

// glTF format errors.
var (
	ErrMissingPositions      = errors.New("glTF primitive has no POSITION attribute")
	ErrUnsupportedPrimitive  = errors.New("unsupported glTF primitive mode")
	ErrTruncatedTriangleList = errors.New("glTF index count is not a multiple of 3")
	ErrAccessorRange         = errors.New("glTF accessor index out of range")
)

// LoadGLTF loads a .gltf or .glb file. External buffers are resolved
// relative to the file.
func LoadGLTF(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glTF: %w", err)
	}
	return modelFromDocument(doc)
}

// DecodeGLTF decodes a self-contained glTF stream (GLB, or JSON with
// embedded buffers).
func DecodeGLTF(r io.Reader) (*Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding glTF: %w", err)
	}
	return modelFromDocument(doc)
}

// modelFromDocument flattens every triangle primitive of every mesh into one
// Model. Node transforms are ignored; meshes are taken in their own space.
func modelFromDocument(doc *gltf.Document) (*Model, error) {
	model := &Model{}

	for _, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				return nil, fmt.Errorf("mesh %q primitive %d: %w: %v", mesh.Name, pi, ErrUnsupportedPrimitive, prim.Mode)
			}

			posAccessor, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, pi, ErrMissingPositions)
			}
			if posAccessor < 0 || posAccessor >= len(doc.Accessors) {
				return nil, fmt.Errorf("mesh %q primitive %d: POSITION %w: %d", mesh.Name, pi, ErrAccessorRange, posAccessor)
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: reading positions: %w", mesh.Name, pi, err)
			}

			var indices []uint32
			if prim.Indices != nil {
				if i := *prim.Indices; i < 0 || i >= len(doc.Accessors) {
					return nil, fmt.Errorf("mesh %q primitive %d: indices %w: %d", mesh.Name, pi, ErrAccessorRange, i)
				}
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q primitive %d: reading indices: %w", mesh.Name, pi, err)
				}
			} else {
				indices = make([]uint32, len(positions))
				for i := range indices {
					indices[i] = uint32(i)
				}
			}
			if len(indices)%3 != 0 {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, pi, ErrTruncatedTriangleList)
			}

			base := len(model.Vertices)
			for _, p := range positions {
				for _, c := range p {
					if f := float64(c); gomath.IsNaN(f) || gomath.IsInf(f, 0) {
						return nil, fmt.Errorf("mesh %q primitive %d: %w: non-finite position", mesh.Name, pi, ErrMalformedVertex)
					}
				}
				model.Vertices = append(model.Vertices, math.Vec3{
					X: float64(p[0]),
					Y: float64(p[1]),
					Z: float64(p[2]),
				})
			}

			for i := 0; i < len(indices); i += 3 {
				face := make([]int, 3)
				for k := 0; k < 3; k++ {
					idx := int(indices[i+k])
					if idx >= len(positions) {
						return nil, fmt.Errorf("mesh %q primitive %d: %w: %d", mesh.Name, pi, ErrFaceIndexRange, idx)
					}
					face[k] = base + idx + 1
				}
				model.Faces = append(model.Faces, face)
			}
		}
	}

	return model, nil
}
