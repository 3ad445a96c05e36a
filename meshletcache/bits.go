package meshletcache

import (
	"math"

	"github.com/lucidpixel/raster3d/vecmath"
)

func float32Bits(v float32) uint32     { return math.Float32bits(v) }
func float32FromBits(b uint32) float32 { return math.Float32frombits(b) }

func newV3(x, y, z float32) vecmath.V3 { return vecmath.NewV3(x, y, z) }
