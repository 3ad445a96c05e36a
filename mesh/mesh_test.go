package mesh

import (
	"testing"

	"github.com/lucidpixel/raster3d/vecmath"
)

func TestRecomputeFaceNormalsMatchesStored(t *testing.T) {
	m := &Mesh{
		Vertices: []vecmath.V3{
			vecmath.NewV3(0, 0, 0),
			vecmath.NewV3(1, 0, 0),
			vecmath.NewV3(0, 1, 0),
		},
		Triangles: []Triangle{{V0: 0, V1: 1, V2: 2}},
	}
	m.RecomputeFaceNormals()
	if !m.NormalsMatch(1e-5) {
		t.Fatalf("freshly recomputed normals should match themselves")
	}
	want := vecmath.NewV3(0, 0, 1)
	got := m.FaceNormals[0]
	if got != want {
		t.Errorf("face normal = %v, want %v", got, want)
	}
}

func TestDegenerateTriangleNormalIsZero(t *testing.T) {
	m := &Mesh{
		Vertices: []vecmath.V3{
			vecmath.NewV3(0, 0, 0),
			vecmath.NewV3(0, 0, 0),
			vecmath.NewV3(1, 0, 0),
		},
		Triangles: []Triangle{{V0: 0, V1: 1, V2: 2}},
	}
	m.RecomputeFaceNormals()
	if m.FaceNormals[0] != (vecmath.V3{}) {
		t.Errorf("degenerate triangle normal = %v, want zero", m.FaceNormals[0])
	}
}
