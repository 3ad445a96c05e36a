package frame

import "github.com/lucidpixel/raster3d/tile"

// Framebuffer is the mutable BGRA pixel slab handed in by the presentation
// collaborator each frame: row-major, stride = Width pixels, pixel layout
// A<<24 | R<<16 | G<<8 | B. The orchestrator writes into it; it never
// allocates or frees it.
type Framebuffer struct {
	Width, Height int
	Pixels        []uint32
}

// NewFramebuffer allocates a cleared Width*Height BGRA slab.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Pixels: make([]uint32, width*height)}
}

// blitTile copies one tile buffer's pixels into the framebuffer at the
// tile's screen offset.
func (f *Framebuffer) blitTile(buf *tile.Buffer, rect tile.Rect) {
	for y := 0; y < rect.Height; y++ {
		srcOff := y * buf.Width
		dstOff := (rect.Y+y)*f.Width + rect.X
		copy(f.Pixels[dstOff:dstOff+rect.Width], buf.Pixels[srcOff:srcOff+rect.Width])
	}
}

// drawTileBorders overlays a one-pixel green outline around every tile.
const tileBorderColor = 0xFF00FF00

func (f *Framebuffer) drawTileBorders(g *tile.Grid) {
	for _, r := range g.Tiles {
		for x := r.X; x < r.X+r.Width; x++ {
			f.set(x, r.Y, tileBorderColor)
			f.set(x, r.Y+r.Height-1, tileBorderColor)
		}
		for y := r.Y; y < r.Y+r.Height; y++ {
			f.set(r.X, y, tileBorderColor)
			f.set(r.X+r.Width-1, y, tileBorderColor)
		}
	}
}

func (f *Framebuffer) set(x, y int, color uint32) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.Pixels[y*f.Width+x] = color
}
