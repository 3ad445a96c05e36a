package raster

import "github.com/lucidpixel/raster3d/bin"

// drawWireframe rasterizes the three edges of a triangle in tile-local
// space using Bresenham's algorithm, bypassing the depth test (a
// documented artifact of the overlay: wire pixels always win).
func drawWireframe(ctx *Context, p0, p1, p2 bin.Point2) {
	ox, oy := ctx.Tile.X, ctx.Tile.Y
	bresenham(ctx, p0.X-ox, p0.Y-oy, p1.X-ox, p1.Y-oy)
	bresenham(ctx, p1.X-ox, p1.Y-oy, p2.X-ox, p2.Y-oy)
	bresenham(ctx, p2.X-ox, p2.Y-oy, p0.X-ox, p0.Y-oy)
}

func bresenham(ctx *Context, x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	dy := -absInt(y1 - y0)
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		if idx := ctx.Buffer.Index(x, y); idx >= 0 {
			ctx.Buffer.Pixels[idx] = wireColor
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
