package bin

import (
	"testing"

	"github.com/lucidpixel/raster3d/tile"
)

func TestBinningSoundness(t *testing.T) {
	g := tile.NewGrid(128, 64, 64)
	b := NewBins(g)
	b.Add(g, 0, Point2{10, 10}, Point2{120, 10}, Point2{60, 50})

	box := BoundingBox(Point2{10, 10}, Point2{120, 10}, Point2{60, 50})
	for _, tl := range g.Tiles {
		inList := contains(b.Tile(tl.Index), 0)
		overlaps := box.Overlaps(tl)
		if inList && !overlaps {
			t.Errorf("triangle binned into tile %+v but AABB does not overlap it", tl)
		}
	}
}

func TestTileStraddling(t *testing.T) {
	g := tile.NewGrid(128, 64, 64)
	b := NewBins(g)
	b.Add(g, 0, Point2{10, 10}, Point2{120, 10}, Point2{60, 50})

	if !contains(b.Tile(0), 0) {
		t.Errorf("straddling triangle should be binned into left tile")
	}
	if !contains(b.Tile(1), 0) {
		t.Errorf("straddling triangle should be binned into right tile")
	}
}

func TestBinOrderIsMeshOrder(t *testing.T) {
	g := tile.NewGrid(64, 64, 64)
	b := NewBins(g)
	b.Add(g, 3, Point2{1, 1}, Point2{10, 1}, Point2{5, 10})
	b.Add(g, 1, Point2{2, 2}, Point2{11, 2}, Point2{6, 11})
	got := b.Tile(0)
	if len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Errorf("bin list = %v, want insertion order [3 1]", got)
	}
}

func TestAABBWhollyOffscreenRejected(t *testing.T) {
	g := tile.NewGrid(64, 64, 64)
	b := NewBins(g)
	b.Add(g, 0, Point2{-100, -100}, Point2{-90, -100}, Point2{-95, -90})
	if len(b.Tile(0)) != 0 {
		t.Errorf("off-screen triangle should not be binned")
	}
}

func TestResetClearsBins(t *testing.T) {
	g := tile.NewGrid(64, 64, 64)
	b := NewBins(g)
	b.Add(g, 0, Point2{1, 1}, Point2{10, 1}, Point2{5, 10})
	b.Reset()
	if len(b.Tile(0)) != 0 {
		t.Errorf("Reset should empty all bin lists")
	}
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
