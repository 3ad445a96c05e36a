// Package tile partitions the screen into fixed-size rectangles and owns
// the per-tile pixel/depth storage each one rasterizes into.
package tile

// DefaultEdge is the default tile edge length T, in pixels.
const DefaultEdge = 64

// Rect is a tile's screen-space rectangle.
type Rect struct {
	X, Y, Width, Height int
	Index               int
}

// Grid partitions a screen of ScreenWidth x ScreenHeight into Cols x Rows
// tiles of edge length Edge (the rightmost column and bottommost row may be
// partial). Grid owns one persistent Buffer per tile, reused every frame.
type Grid struct {
	Cols, Rows                 int
	ScreenWidth, ScreenHeight  int
	Edge                       int
	Tiles                      []Rect
	Buffers                    []Buffer
}

// NewGrid builds a Grid covering width x height pixels with the given tile
// edge length, allocating one Buffer per tile sized to that tile's actual
// (possibly partial) dimensions.
func NewGrid(width, height, edge int) *Grid {
	if edge <= 0 {
		edge = DefaultEdge
	}
	cols := ceilDiv(width, edge)
	rows := ceilDiv(height, edge)

	g := &Grid{
		Cols:         cols,
		Rows:         rows,
		ScreenWidth:  width,
		ScreenHeight: height,
		Edge:         edge,
		Tiles:        make([]Rect, cols*rows),
		Buffers:      make([]Buffer, cols*rows),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			x := col * edge
			y := row * edge
			w := minInt(edge, width-x)
			h := minInt(edge, height-y)
			g.Tiles[idx] = Rect{X: x, Y: y, Width: w, Height: h, Index: idx}
			g.Buffers[idx] = NewBuffer(w, h)
		}
	}
	return g
}

// TileAt returns the tile at tile column col and tile row row, or false if
// out of range.
func (g *Grid) TileAt(col, row int) (Rect, bool) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return Rect{}, false
	}
	return g.Tiles[row*g.Cols+col], true
}

// ClearAll clears every tile buffer to spec.md §4.D's defaults: solid black
// and +inf depth.
func (g *Grid) ClearAll() {
	for i := range g.Buffers {
		g.Buffers[i].Clear()
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
