// Package bin assigns projected triangles to the screen tiles their
// 2-D bounding box overlaps, per spec.md §4.E.
package bin

import "github.com/lucidpixel/raster3d/tile"

// Point2 is an integer screen-space coordinate.
type Point2 struct{ X, Y int }

// AABB is an axis-aligned screen-space bounding box, inclusive on both ends.
type AABB struct {
	MinX, MinY, MaxX, MaxY int
}

// BoundingBox computes the screen-space AABB of a projected triangle.
func BoundingBox(p0, p1, p2 Point2) AABB {
	return AABB{
		MinX: min3(p0.X, p1.X, p2.X),
		MaxX: max3(p0.X, p1.X, p2.X),
		MinY: min3(p0.Y, p1.Y, p2.Y),
		MaxY: max3(p0.Y, p1.Y, p2.Y),
	}
}

// OutsideScreen reports whether the AABB lies wholly outside [0,w)x[0,h).
func (a AABB) OutsideScreen(w, h int) bool {
	return a.MaxX < 0 || a.MinX >= w || a.MaxY < 0 || a.MinY >= h
}

// ClampToScreen clamps the AABB to [0,w-1]x[0,h-1].
func (a AABB) ClampToScreen(w, h int) AABB {
	return AABB{
		MinX: clamp(a.MinX, 0, w-1),
		MaxX: clamp(a.MaxX, 0, w-1),
		MinY: clamp(a.MinY, 0, h-1),
		MaxY: clamp(a.MaxY, 0, h-1),
	}
}

// Overlaps reports a strict AABB-vs-tile-rectangle overlap test.
func (a AABB) Overlaps(t tile.Rect) bool {
	return a.MinX <= t.X+t.Width-1 && a.MaxX >= t.X && a.MinY <= t.Y+t.Height-1 && a.MaxY >= t.Y
}

// Bins holds one ordered triangle-index list per tile in a Grid.
type Bins struct {
	perTile [][]int
}

// NewBins allocates an empty bin set sized to g's tile count.
func NewBins(g *tile.Grid) *Bins {
	return &Bins{perTile: make([][]int, len(g.Tiles))}
}

// Reset clears every tile's bin list while keeping the underlying slice
// capacity, so repeated frames don't re-allocate.
func (b *Bins) Reset() {
	for i := range b.perTile {
		b.perTile[i] = b.perTile[i][:0]
	}
}

// Tile returns the ordered triangle-index list for tile index idx.
func (b *Bins) Tile(idx int) []int { return b.perTile[idx] }

// Add bins triangle index triIdx with projected vertices p0,p1,p2 against
// every tile in g whose rectangle its (clamped) AABB overlaps, appending in
// mesh order within each tile's list.
func (b *Bins) Add(g *tile.Grid, triIdx int, p0, p1, p2 Point2) {
	box := BoundingBox(p0, p1, p2)
	if box.OutsideScreen(g.ScreenWidth, g.ScreenHeight) {
		return
	}
	clamped := box.ClampToScreen(g.ScreenWidth, g.ScreenHeight)

	minCol := clamped.MinX / g.Edge
	maxCol := clamped.MaxX / g.Edge
	minRow := clamped.MinY / g.Edge
	maxRow := clamped.MaxY / g.Edge

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			t, ok := g.TileAt(col, row)
			if !ok {
				continue
			}
			if clamped.Overlaps(t) {
				b.perTile[t.Index] = append(b.perTile[t.Index], triIdx)
			}
		}
	}
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
