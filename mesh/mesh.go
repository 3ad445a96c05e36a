// Package mesh holds triangle-mesh storage and the greedy meshlet builder.
package mesh

import "github.com/lucidpixel/raster3d/vecmath"

// Triangle indexes three vertices and carries the per-face render state
// named in spec.md §3.
type Triangle struct {
	V0, V1, V2 uint32
	CullFill   bool
	CullWire   bool
	BaseColor  uint32 // 0xAARRGGBB
}

// Mesh is the geometry the rasterizer consumes: vertices, parallel UVs, an
// ordered triangle list, parallel face normals, and an optional meshlet
// clustering produced by GenerateMeshlets or loaded from the meshlet cache.
type Mesh struct {
	Vertices    []vecmath.V3
	TexCoords   []vecmath.V2
	Triangles   []Triangle
	FaceNormals []vecmath.V3
	Meshlets    []Meshlet
}

// RecomputeFaceNormals rebuilds FaceNormals from Vertices and Triangles.
// A degenerate triangle (zero-area, or any index referencing a vertex that
// does not exist) gets the zero vector, never NaN.
func (m *Mesh) RecomputeFaceNormals() {
	normals := make([]vecmath.V3, len(m.Triangles))
	for i, tri := range m.Triangles {
		normals[i] = faceNormal(m, tri)
	}
	m.FaceNormals = normals
}

func faceNormal(m *Mesh, tri Triangle) vecmath.V3 {
	n := uint32(len(m.Vertices))
	if tri.V0 >= n || tri.V1 >= n || tri.V2 >= n {
		return vecmath.V3{}
	}
	v0 := m.Vertices[tri.V0]
	v1 := m.Vertices[tri.V1]
	v2 := m.Vertices[tri.V2]
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	return e1.Cross(e2).Normalize()
}

// NormalsMatch reports whether recomputing face normals from Vertices and
// Triangles agrees with the stored FaceNormals within the per-component
// tolerance spec.md §3 specifies for non-degenerate faces.
func (m *Mesh) NormalsMatch(tolerance float32) bool {
	if len(m.FaceNormals) != len(m.Triangles) {
		return false
	}
	for i, tri := range m.Triangles {
		want := faceNormal(m, tri)
		got := m.FaceNormals[i]
		if want == (vecmath.V3{}) {
			continue // degenerate: any stored value (including zero) is acceptable
		}
		if absf(want.X-got.X) > tolerance || absf(want.Y-got.Y) > tolerance || absf(want.Z-got.Z) > tolerance {
			return false
		}
	}
	return true
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
