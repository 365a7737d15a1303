// Package math provides the small vector toolkit used by the mesh loaders and projector.
package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D point or vector in model space.
type Vec3 struct {
	X, Y, Z float64
}

// Unset marks a vertex slot that was never filled. It must not be projected.
var Unset = Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}

// IsUnset reports whether v is the Unset sentinel.
func (v Vec3) IsUnset() bool {
	return v == Unset
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{math.Min(v.X, other.X), math.Min(v.Y, other.Y), math.Min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{math.Max(v.X, other.X), math.Max(v.Y, other.Y), math.Max(v.Z, other.Z)}
}

// RotateY rotates v about the vertical axis so that the result's X is
// x*cos(angle) - z*sin(angle). Y is left untouched.
func (v Vec3) RotateY(angle float64) Vec3 {
	r := mgl64.Rotate3DY(-angle).Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return Vec3{r[0], r[1], r[2]}
}

// Bounds returns the axis-aligned bounding box of points.
// Both results are the zero vector when points is empty.
func Bounds(points []Vec3) (lo, hi Vec3) {
	if len(points) == 0 {
		return Vec3{}, Vec3{}
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi
}
