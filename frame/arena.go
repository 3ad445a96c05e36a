package frame

import (
	"github.com/lucidpixel/raster3d/bin"
	"github.com/lucidpixel/raster3d/tile"
	"github.com/lucidpixel/raster3d/vecmath"
)

// frameArena is the double-buffered, frame-scoped scratch storage named in
// DESIGN NOTES §9: bin lists and projected/camera-space vertex arrays are
// not freed until the *next* frame begins, since a worker from the
// previous frame might still be reading them at the moment the
// orchestrator starts preparing the next one. Swapping (rather than
// reallocating) each frame keeps last frame's arrays alive and valid for
// exactly one more frame.
type frameArena struct {
	bins      [2]*bin.Bins
	projected [2][]bin.Point2
	camera    [2][]vecmath.V3
	cur       int
}

func newFrameArena(g *tile.Grid, vertexCount int) *frameArena {
	a := &frameArena{}
	for i := 0; i < 2; i++ {
		a.bins[i] = bin.NewBins(g)
		a.projected[i] = make([]bin.Point2, vertexCount)
		a.camera[i] = make([]vecmath.V3, vertexCount)
	}
	return a
}

// swap advances to the other scratch buffer set, to be used by the frame
// about to be prepared.
func (a *frameArena) swap() { a.cur = 1 - a.cur }

func (a *frameArena) current() (bins *bin.Bins, projected []bin.Point2, camera []vecmath.V3) {
	return a.bins[a.cur], a.projected[a.cur], a.camera[a.cur]
}
