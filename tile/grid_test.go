package tile

import "testing"

func TestTileCoverageExact(t *testing.T) {
	cases := []struct{ w, h, edge int }{
		{128, 64, 64},
		{8, 8, 8},
		{1, 1, 8},
		{100, 37, 16},
		{65, 65, 64},
	}
	for _, c := range cases {
		g := NewGrid(c.w, c.h, c.edge)
		var sum int
		for _, tl := range g.Tiles {
			sum += tl.Width * tl.Height
		}
		if sum != c.w*c.h {
			t.Errorf("w=%d h=%d edge=%d: covered %d pixels, want %d", c.w, c.h, c.edge, sum, c.w*c.h)
		}
	}
}

func TestSingleTileOneByOne(t *testing.T) {
	g := NewGrid(1, 1, 8)
	if g.Cols != 1 || g.Rows != 1 {
		t.Fatalf("1x1 screen should produce a 1x1 grid, got %dx%d", g.Cols, g.Rows)
	}
	if g.Tiles[0].Width != 1 || g.Tiles[0].Height != 1 {
		t.Errorf("single tile size = %dx%d, want 1x1", g.Tiles[0].Width, g.Tiles[0].Height)
	}
}

func TestPartialEdgeTiles(t *testing.T) {
	g := NewGrid(128, 64, 64)
	if g.Cols != 2 || g.Rows != 1 {
		t.Fatalf("128x64 at edge 64 should be 2x1, got %dx%d", g.Cols, g.Rows)
	}
	for _, tl := range g.Tiles {
		if tl.Width != 64 || tl.Height != 64 {
			t.Errorf("tile %+v should be an exact 64x64 interior tile", tl)
		}
	}

	g2 := NewGrid(100, 37, 64)
	// cols=ceil(100/64)=2, rightmost col width = 100-64=36
	right, ok := g2.TileAt(1, 0)
	if !ok {
		t.Fatalf("expected tile at (1,0)")
	}
	if right.Width != 36 {
		t.Errorf("right edge tile width = %d, want 36", right.Width)
	}
	if right.Height != 37 {
		t.Errorf("bottom edge tile height = %d, want 37", right.Height)
	}
}

func TestClearAllResetsBuffers(t *testing.T) {
	g := NewGrid(16, 16, 8)
	for i := range g.Buffers {
		for p := range g.Buffers[i].Pixels {
			g.Buffers[i].Pixels[p] = 0xFFFFFFFF
			g.Buffers[i].Depth[p] = 0
		}
	}
	g.ClearAll()
	for _, b := range g.Buffers {
		for _, p := range b.Pixels {
			if p != clearColor {
				t.Errorf("pixel = %#x, want %#x after clear", p, clearColor)
			}
		}
		for _, d := range b.Depth {
			if d <= 1e30 {
				t.Errorf("depth = %v, want +inf after clear", d)
			}
		}
	}
}
