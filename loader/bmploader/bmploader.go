// Package bmploader decodes BMP files into raster.Texture. Decoding is
// wired to golang.org/x/image/bmp (present in both gioui-gio's and
// noisetorch-NoiseTorch's go.mod as golang.org/x/image) rather than a
// hand-rolled BMP header parser, since a real corpus dependency already
// normalizes row order and supports the uncompressed 24/32bpp subset
// spec.md §6 requires.
package bmploader

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/bmp"

	"github.com/lucidpixel/raster3d/raster"
)

// Load decodes path into a BGRA Texture.
func Load(path string) (*raster.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bmploader: opening %s: %w", path, err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("bmploader: decoding %s: %w", path, err)
	}
	return fromImage(img), nil
}

// fromImage repacks a decoded image.Image into the BGRA uint32 layout the
// rasterizer's nearest-neighbor sampler consumes.
func fromImage(img image.Image) *raster.Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tex := &raster.Texture{Width: w, Height: h, Pixels: make([]uint32, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA() returns 16-bit-per-channel premultiplied values; BMP has
			// no alpha channel in the supported subset, so shift down to 8
			// bits and force opaque.
			tex.Pixels[y*w+x] = 0xFF000000 | (uint32(r>>8) << 16) | (uint32(g>>8) << 8) | uint32(b>>8)
		}
	}
	return tex
}
