// Package vecmath provides the vector and matrix primitives the rest of the
// rasterizer builds on: V2/V3/V4 and Mat4, plus SIMD-backed batch operations
// over slices of them (see batch.go).
//
// V3 is padded to 16 bytes so a slice of V3 can be reinterpreted as a flat
// []float32 and handed to github.com/ajroetker/go-highway/hwy without a
// copy. The padding lane carries no meaning and is always zero on store.
package vecmath

import "math"

// V2 is a 2-component 32-bit float vector.
type V2 struct {
	X, Y float32
}

// V3 is a 3-component 32-bit float vector padded to 16 bytes for SIMD loads.
// w is padding; it must be zero whenever a V3 is stored and is never read.
type V3 struct {
	X, Y, Z float32
	w       float32
}

// V4 is a 4-component 32-bit float vector.
type V4 struct {
	X, Y, Z, W float32
}

// NewV3 builds a V3 with the padding lane zeroed.
func NewV3(x, y, z float32) V3 {
	return V3{X: x, Y: y, Z: z}
}

// --- V2 ---

func (a V2) Add(b V2) V2   { return V2{a.X + b.X, a.Y + b.Y} }
func (a V2) Sub(b V2) V2   { return V2{a.X - b.X, a.Y - b.Y} }
func (a V2) Scale(s float32) V2 { return V2{a.X * s, a.Y * s} }
func (a V2) Dot(b V2) float32   { return a.X*b.X + a.Y*b.Y }

// --- V3 ---

func (a V3) Add(b V3) V3 { return NewV3(a.X+b.X, a.Y+b.Y, a.Z+b.Z) }
func (a V3) Sub(b V3) V3 { return NewV3(a.X-b.X, a.Y-b.Y, a.Z-b.Z) }

func (a V3) Scale(s float32) V3 { return NewV3(a.X*s, a.Y*s, a.Z*s) }

func (a V3) Dot(b V3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a V3) Cross(b V3) V3 {
	return NewV3(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}

func (a V3) LengthSq() float32 { return a.X*a.X + a.Y*a.Y + a.Z*a.Z }

func (a V3) Length() float32 { return float32(math.Sqrt(float64(a.LengthSq()))) }

// Normalize returns (0,0,0) when length < 1e-6, otherwise a*(1/length).
// This sentinel is intentional and load-bearing: see spec.md §4.A.
func (a V3) Normalize() V3 {
	l := a.Length()
	if l < 1e-6 {
		return V3{}
	}
	return a.Scale(1 / l)
}

// From3D lifts a V3 to homogeneous coordinates with w=1.
func From3D(v V3) V4 { return V4{v.X, v.Y, v.Z, 1} }

// To3D performs the perspective divide. If w==0 the input is treated as a
// direction vector and passed through without dividing.
func To3D(v V4) V3 {
	if v.W == 0 {
		return NewV3(v.X, v.Y, v.Z)
	}
	inv := 1 / v.W
	return NewV3(v.X*inv, v.Y*inv, v.Z*inv)
}

// --- V4 ---

func (a V4) Add(b V4) V4 { return V4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W} }
func (a V4) Sub(b V4) V4 { return V4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W} }
func (a V4) Scale(s float32) V4 {
	return V4{a.X * s, a.Y * s, a.Z * s, a.W * s}
}
func (a V4) Dot(b V4) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W }

// Clamp01 clamps each component of a V3 treated as a color to [0,1].
func (a V3) Clamp01() V3 {
	return NewV3(clamp01(a.X), clamp01(a.Y), clamp01(a.Z))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
