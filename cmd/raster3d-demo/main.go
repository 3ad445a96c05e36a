// Command raster3d-demo renders a fixed number of frames of an OBJ mesh
// through the tile-based rasterization pipeline and writes the final
// composited frame to a PNG file. It exists to exercise frame.Orchestrator
// end to end the way the teacher's examples/basic wired together its own
// library's pieces into a runnable program.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"

	"github.com/lucidpixel/raster3d/frame"
	"github.com/lucidpixel/raster3d/loader/bmploader"
	"github.com/lucidpixel/raster3d/loader/objloader"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "raster3d-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	objPath := flag.String("obj", "", "path to an OBJ mesh (required)")
	texPath := flag.String("texture", "", "optional path to a BMP texture")
	width := flag.Int("width", 640, "framebuffer width")
	height := flag.Int("height", 480, "framebuffer height")
	frames := flag.Int("frames", 1, "number of frames to render before writing output")
	yaw := flag.Float64("yaw", 0, "radians of yaw applied once before the first frame")
	out := flag.String("out", "out.png", "output PNG path")
	flag.Parse()

	if *objPath == "" {
		return fmt.Errorf("-obj is required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	m, err := objloader.Load(*objPath)
	if err != nil {
		return err
	}

	orch := frame.New(m, *width, *height, *objPath, frame.WithLogger(logger))
	defer orch.Shutdown()

	if *texPath != "" {
		tex, err := bmploader.Load(*texPath)
		if err != nil {
			return err
		}
		orch.SetTexture(tex)
	}

	fb := frame.NewFramebuffer(*width, *height)
	initial := []frame.InputEvent{{Action: frame.ActionYawRight, Delta: float32(*yaw)}}
	for i := 0; i < *frames; i++ {
		events := initial
		if i > 0 {
			events = nil
		}
		if err := orch.RenderFrame(fb, events, nil); err != nil {
			return fmt.Errorf("rendering frame %d: %w", i, err)
		}
	}

	logger.Info("render complete", "title", orch.Title())
	return writePNG(*out, fb)
}

func writePNG(path string, fb *frame.Framebuffer) error {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			px := fb.Pixels[y*fb.Width+x]
			img.Set(x, y, color.NRGBA{
				R: uint8(px >> 16),
				G: uint8(px >> 8),
				B: uint8(px),
				A: uint8(px >> 24),
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
