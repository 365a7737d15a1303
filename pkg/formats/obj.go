package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/wirespin/pkg/math"
)

// OBJ format errors.
var (
	ErrMalformedVertex = errors.New("malformed vertex line")
	ErrMalformedFace   = errors.New("malformed face line")
	ErrFaceIndexRange  = errors.New("face index out of range")
)

// ParseOBJ parses the Wavefront OBJ subset used for wireframes: "v x y z"
// vertex lines and "f i j k ..." face lines. Face tokens may carry
// "/texture/normal" suffixes, only the vertex index is kept. Negative
// indices are resolved relative to the vertices declared so far.
// Every other line is ignored. All malformed lines are reported together.
func ParseOBJ(r io.Reader) (*Model, error) {
	model := &Model{}
	var errs error

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "v "):
			v, err := parseOBJVertex(line)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("line %d: %w", lineNo, err))
				continue
			}
			model.Vertices = append(model.Vertices, v)
		case strings.HasPrefix(line, "f "):
			face, err := parseOBJFace(line, len(model.Vertices))
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("line %d: %w", lineNo, err))
				continue
			}
			model.Faces = append(model.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("reading OBJ: %w", err))
	}

	// Forward references are legal inside the file, so range is checked once
	// every vertex is known.
	for i, face := range model.Faces {
		for _, idx := range face {
			if idx < 1 || idx > len(model.Vertices) {
				errs = multierr.Append(errs, fmt.Errorf("face %d: %w: %d (have %d vertices)",
					i+1, ErrFaceIndexRange, idx, len(model.Vertices)))
			}
		}
	}

	if errs != nil {
		return nil, errs
	}
	return model, nil
}

// parseOBJVertex parses "v x y z [w]".
func parseOBJVertex(line string) (math.Vec3, error) {
	fields := strings.Fields(line)[1:]
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("%w: want 3 coordinates, got %d", ErrMalformedVertex, len(fields))
	}

	var pos [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %q", ErrMalformedVertex, fields[i])
		}
		if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
			return math.Vec3{}, fmt.Errorf("%w: non-finite coordinate %q", ErrMalformedVertex, fields[i])
		}
		pos[i] = f
	}
	return math.Vec3{X: pos[0], Y: pos[1], Z: pos[2]}, nil
}

// parseOBJFace parses "f a b c ..." into 1-based absolute indices.
// declared is the number of vertices seen before this line.
func parseOBJFace(line string, declared int) ([]int, error) {
	fields := strings.Fields(line)[1:]
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no vertex indices", ErrMalformedFace)
	}

	face := make([]int, 0, len(fields))
	for _, tok := range fields {
		if slash := strings.IndexByte(tok, '/'); slash >= 0 {
			tok = tok[:slash]
		}
		idx, err := strconv.Atoi(tok)
		if err != nil || idx == 0 {
			return nil, fmt.Errorf("%w: bad index %q", ErrMalformedFace, tok)
		}
		if idx < 0 {
			idx = declared + idx + 1
			if idx < 1 {
				return nil, fmt.Errorf("%w: relative index %s before vertex 1", ErrFaceIndexRange, tok)
			}
		}
		face = append(face, idx)
	}
	return face, nil
}

// LoadOBJ parses an OBJ file from disk.
func LoadOBJ(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f)
}
