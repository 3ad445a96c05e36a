package raster

import (
	"testing"

	"github.com/lucidpixel/raster3d/bin"
	"github.com/lucidpixel/raster3d/mesh"
	"github.com/lucidpixel/raster3d/tile"
	"github.com/lucidpixel/raster3d/vecmath"
)

// singleTriangleContext builds an 8x8, single-tile scene with one triangle
// at screen vertices (1,1),(6,1),(3,6). Object space is taken equal to
// camera space (Rotation=Identity, no z-offset) so recomputed face normals
// land directly in camera space. winding "front" orders vertices so the
// face's outward normal points back toward the camera at the origin (not
// culled); "back" reverses two vertices so the same face is culled.
func singleTriangleContext(winding string) (*Context, *tile.Buffer) {
	var tri mesh.Triangle
	switch winding {
	case "front":
		tri = mesh.Triangle{V0: 0, V1: 2, V2: 1, BaseColor: 0xFFFFFFFF}
	case "back":
		tri = mesh.Triangle{V0: 0, V1: 1, V2: 2, BaseColor: 0xFFFFFFFF}
	}
	camera := []vecmath.V3{
		vecmath.NewV3(-3, -3, 5),
		vecmath.NewV3(2, -3, 5),
		vecmath.NewV3(-1, 2, 5),
	}
	m := &mesh.Mesh{
		Vertices:  camera,
		TexCoords: nil,
		Triangles: []mesh.Triangle{tri},
	}
	m.RecomputeFaceNormals()

	buf := tile.NewBuffer(8, 8)
	ctx := &Context{
		Tile:        tile.Rect{X: 0, Y: 0, Width: 8, Height: 8, Index: 0},
		Buffer:      &buf,
		TriangleIDs: []int{0},
		Mesh:        m,
		Projected: []bin.Point2{
			{X: 1, Y: 1}, {X: 6, Y: 1}, {X: 3, Y: 6},
		},
		Camera:   camera,
		Rotation: vecmath.Identity(),
		LightDir: m.FaceNormals[0],
	}
	return ctx, &buf
}

func TestSingleTriangleKnownPixel(t *testing.T) {
	ctx, buf := singleTriangleContext("front")
	RasterizeTile(ctx)

	if idx := buf.Index(3, 3); buf.Pixels[idx] != 0xFFFFFFFF {
		t.Errorf("pixel (3,3) = %#x, want 0xFFFFFFFF", buf.Pixels[idx])
	}
	if idx := buf.Index(0, 0); buf.Pixels[idx] != 0xFF000000 {
		t.Errorf("pixel (0,0) = %#x, want 0xFF000000 (untouched clear color)", buf.Pixels[idx])
	}
}

func TestBackfaceCullingFlipsWithWinding(t *testing.T) {
	ctxFront, bufFront := singleTriangleContext("front")
	RasterizeTile(ctxFront)
	var lit int
	for _, p := range bufFront.Pixels {
		if p != 0xFF000000 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("front-facing winding should render a non-empty triangle")
	}

	ctxBack, bufBack := singleTriangleContext("back")
	RasterizeTile(ctxBack)
	for _, p := range bufBack.Pixels {
		if p != 0xFF000000 {
			t.Fatalf("back-facing winding (reversed vertex order) should render zero pixels, found %#x", p)
		}
	}
}

func TestDepthTestKeepsNearerFragment(t *testing.T) {
	camera := []vecmath.V3{
		vecmath.NewV3(-3, -3, 1),
		vecmath.NewV3(2, -3, 1),
		vecmath.NewV3(-1, 2, 1),
	}
	m := &mesh.Mesh{
		Vertices:  camera,
		Triangles: []mesh.Triangle{{V0: 0, V1: 2, V2: 1, BaseColor: 0xFFFFFFFF}},
	}
	m.RecomputeFaceNormals()
	projected := []bin.Point2{{X: 1, Y: 1}, {X: 6, Y: 1}, {X: 3, Y: 6}}
	buf := tile.NewBuffer(8, 8)
	ctx := &Context{
		Tile:        tile.Rect{X: 0, Y: 0, Width: 8, Height: 8},
		Buffer:      &buf,
		TriangleIDs: []int{0},
		Mesh:        m,
		Projected:   projected,
		Rotation:    vecmath.Identity(),
		LightDir:    m.FaceNormals[0],
		Camera:      camera,
	}

	// Near pass at z=2, establishing depth=2 at the shared pixel.
	ctx.Camera = []vecmath.V3{vecmath.NewV3(-3, -3, 2), vecmath.NewV3(2, -3, 2), vecmath.NewV3(-1, 2, 2)}
	RasterizeTile(ctx)

	idx := buf.Index(3, 3)
	if buf.Depth[idx] != 2 {
		t.Fatalf("depth after near pass = %v, want 2", buf.Depth[idx])
	}

	// Farther pass at z=5 must not overwrite the nearer fragment.
	ctx.Camera = []vecmath.V3{vecmath.NewV3(-3, -3, 5), vecmath.NewV3(2, -3, 5), vecmath.NewV3(-1, 2, 5)}
	RasterizeTile(ctx)

	if buf.Depth[idx] != 2 {
		t.Errorf("farther triangle overwrote nearer fragment: depth = %v, want still 2", buf.Depth[idx])
	}
}

func TestIntensityFormula(t *testing.T) {
	if got := intensity(1); got != 1 {
		t.Errorf("intensity(1) = %v, want 1", got)
	}
	if got := intensity(0); got != Ambient {
		t.Errorf("intensity(0) = %v, want Ambient=%v", got, Ambient)
	}
	if got := intensity(-5); got != Ambient {
		t.Errorf("intensity clamps negative brightness to Ambient, got %v", got)
	}
}

func TestTextureSampleClampsAndRounds(t *testing.T) {
	tex := &Texture{Width: 2, Height: 2, Pixels: []uint32{0xFF000001, 0xFF000002, 0xFF000003, 0xFF000004}}
	if got := tex.Sample(-1, -1); got != 0xFF000001 {
		t.Errorf("Sample(-1,-1) = %#x, want top-left texel", got)
	}
	if got := tex.Sample(2, 2); got != 0xFF000004 {
		t.Errorf("Sample(2,2) = %#x, want bottom-right texel", got)
	}
}

func TestSentinelProjectionRejectsTriangle(t *testing.T) {
	ctx, buf := singleTriangleContext("front")
	ctx.Projected[0] = bin.Point2{X: sentinelCoord, Y: sentinelCoord}
	RasterizeTile(ctx)
	for _, p := range buf.Pixels {
		if p != 0xFF000000 {
			t.Fatalf("triangle with a behind-near sentinel vertex should not render, found %#x", p)
		}
	}
}
