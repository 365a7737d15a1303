package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/wirespin/pkg/math"
)

const squareOBJ = `# unit square
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
f 1 2 3 4
`

func TestParseOBJ_Square(t *testing.T) {
	model, err := ParseOBJ(strings.NewReader(squareOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if model.VertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", model.VertexCount())
	}
	if model.FaceCount() != 1 {
		t.Fatalf("expected 1 face, got %d", model.FaceCount())
	}

	want := []int{1, 2, 3, 4}
	for i, idx := range model.Faces[0] {
		if idx != want[i] {
			t.Errorf("face index %d = %d, want %d", i, idx, want[i])
		}
	}

	if model.Vertices[2] != (math.Vec3{X: 1, Y: 1, Z: 0}) {
		t.Errorf("vertex 3 = %v, want (1, 1, 0)", model.Vertices[2])
	}
}

func TestParseOBJ_IgnoresOtherLines(t *testing.T) {
	src := `mtllib cube.mtl
o Cube
v 0 0 0
vt 0.5 0.5
vn 0 0 1
v 1 0 0
v 0 1 0
usemtl Material
s off
f 1/1/1 2/1/1 3/1/1
`
	model, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if model.VertexCount() != 3 {
		t.Errorf("expected 3 vertices, got %d", model.VertexCount())
	}
	if len(model.Faces) != 1 || len(model.Faces[0]) != 3 {
		t.Fatalf("expected one triangle, got %v", model.Faces)
	}
	if model.Faces[0][2] != 3 {
		t.Errorf("expected slash suffix stripped, got %d", model.Faces[0][2])
	}
}

func TestParseOBJ_RelativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	model, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	got := model.Faces[0]
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("relative indices resolved to %v, want [1 2 3]", got)
	}
}

func TestParseOBJ_ForwardReference(t *testing.T) {
	src := "f 1 2\nv 0 0 0\nv 1 1 1\n"
	if _, err := ParseOBJ(strings.NewReader(src)); err != nil {
		t.Errorf("forward reference rejected: %v", err)
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"short vertex", "v 1 2\n", ErrMalformedVertex},
		{"bad coordinate", "v 1 x 3\n", ErrMalformedVertex},
		{"NaN coordinate", "v NaN 0 0\nv 1 1 0\nf 1 2\n", ErrMalformedVertex},
		{"infinite coordinate", "v 0 +Inf 0\n", ErrMalformedVertex},
		{"overflowing coordinate", "v 0 0 1e400\n", ErrMalformedVertex},
		{"empty face", "v 0 0 0\nf \n", ErrMalformedFace},
		{"zero index", "v 0 0 0\nf 0\n", ErrMalformedFace},
		{"non numeric index", "v 0 0 0\nf a\n", ErrMalformedFace},
		{"index past end", "v 0 0 0\nf 1 2\n", ErrFaceIndexRange},
		{"relative before start", "v 0 0 0\nf -2\n", ErrFaceIndexRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseOBJ_ReportsEveryBadLine(t *testing.T) {
	src := "v 1\nv 0 0 0\nv 2\nf 9\n"
	_, err := ParseOBJ(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	msg := err.Error()
	for _, want := range []string{"line 1", "line 3", "face 1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestModelScale(t *testing.T) {
	model, err := ParseOBJ(strings.NewReader(squareOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	model.Scale(20)

	lo, hi := model.Bounds()
	if lo != (math.Vec3{X: -20, Y: -20}) || hi != (math.Vec3{X: 20, Y: 20}) {
		t.Errorf("scaled bounds = %v..%v, want (-20,-20,0)..(20,20,0)", lo, hi)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	objPath := filepath.Join(tmpDir, "square.OBJ")
	if err := os.WriteFile(objPath, []byte(squareOBJ), 0644); err != nil {
		t.Fatalf("failed to write test mesh: %v", err)
	}

	model, err := Load(objPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if model.FaceCount() != 1 {
		t.Errorf("expected 1 face, got %d", model.FaceCount())
	}

	if _, err := Load(filepath.Join(tmpDir, "mesh.stl")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	if _, err := Load(filepath.Join(tmpDir, "missing.obj")); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}
