package formats

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/wirespin/pkg/math"
)

// createTestGLB encodes a single-mesh GLB holding the given primitive data.
func createTestGLB(t *testing.T, positions [][3]float32, indices []uint16) []byte {
	t.Helper()

	doc := gltf.NewDocument()
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{gltf.POSITION: modeler.WritePosition(doc, positions)},
	}
	if indices != nil {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, indices))
	}
	doc.Meshes = []*gltf.Mesh{{Name: "quad", Primitives: []*gltf.Primitive{prim}}}

	buf := new(bytes.Buffer)
	enc := gltf.NewEncoder(buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		t.Fatalf("failed to encode test GLB: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeGLTF_IndexedQuad(t *testing.T) {
	positions := [][3]float32{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}
	data := createTestGLB(t, positions, []uint16{0, 1, 2, 0, 2, 3})

	model, err := DecodeGLTF(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeGLTF failed: %v", err)
	}

	if model.VertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", model.VertexCount())
	}
	if model.FaceCount() != 2 {
		t.Fatalf("expected 2 faces, got %d", model.FaceCount())
	}

	want := [][]int{{1, 2, 3}, {1, 3, 4}}
	for i, face := range model.Faces {
		for k := range face {
			if face[k] != want[i][k] {
				t.Errorf("face %d = %v, want %v", i, face, want[i])
				break
			}
		}
	}

	if model.Vertices[3] != (math.Vec3{X: -1, Y: 1, Z: 0}) {
		t.Errorf("vertex 4 = %v, want (-1, 1, 0)", model.Vertices[3])
	}
}

func TestDecodeGLTF_Unindexed(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	data := createTestGLB(t, positions, nil)

	model, err := DecodeGLTF(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeGLTF failed: %v", err)
	}
	if model.FaceCount() != 1 {
		t.Fatalf("expected 1 face, got %d", model.FaceCount())
	}
	if f := model.Faces[0]; f[0] != 1 || f[1] != 2 || f[2] != 3 {
		t.Errorf("face = %v, want [1 2 3]", f)
	}
}

func TestDecodeGLTF_TruncatedTriangles(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	data := createTestGLB(t, positions, []uint16{0, 1})

	_, err := DecodeGLTF(bytes.NewReader(data))
	if !errors.Is(err, ErrTruncatedTriangleList) {
		t.Errorf("expected ErrTruncatedTriangleList, got %v", err)
	}
}

func TestDecodeGLTF_Garbage(t *testing.T) {
	if _, err := DecodeGLTF(bytes.NewReader([]byte("not a gltf"))); err == nil {
		t.Error("expected error decoding garbage, got nil")
	}
}

func TestDecodeGLTF_PositionAccessorOutOfRange(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"meshes":[{"primitives":[{"attributes":{"POSITION":7}}]}]}`

	_, err := DecodeGLTF(strings.NewReader(doc))
	if !errors.Is(err, ErrAccessorRange) {
		t.Errorf("expected ErrAccessorRange, got %v", err)
	}
}

func TestDecodeGLTF_IndicesOutOfRange(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	doc := gltf.NewDocument()
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{gltf.POSITION: modeler.WritePosition(doc, positions)},
		Indices:    gltf.Index(42),
	}
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{prim}}}

	if _, err := modelFromDocument(doc); !errors.Is(err, ErrAccessorRange) {
		t.Errorf("expected ErrAccessorRange, got %v", err)
	}
}
