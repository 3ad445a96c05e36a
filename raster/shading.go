package raster

import (
	"math"

	"github.com/lucidpixel/raster3d/vecmath"
)

// Ambient is the minimum lighting intensity applied even to faces pointed
// fully away from the light.
const Ambient = 0.25

// intensity maps a clamped dot(normal,lightDir) to a [Ambient,1] multiplier.
func intensity(brightness float32) float32 {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 1 {
		brightness = 1
	}
	return Ambient + brightness*(1-Ambient)
}

// shade packs base (0xAARRGGBB, alpha ignored) scaled by intensity factor
// into an opaque BGRA pixel.
func shade(base uint32, factor float32) uint32 {
	r := clampByte(float32((base>>16)&0xFF) * factor)
	g := clampByte(float32((base>>8)&0xFF) * factor)
	b := clampByte(float32(base&0xFF) * factor)
	return 0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func clampByte(v float32) uint32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint32(v + 0.5)
}

// transformNormal applies the upper-3x3 of m to n and renormalizes.
func transformNormal(m vecmath.Mat4, n vecmath.V3) vecmath.V3 {
	x := m.At(0, 0)*n.X + m.At(0, 1)*n.Y + m.At(0, 2)*n.Z
	y := m.At(1, 0)*n.X + m.At(1, 1)*n.Y + m.At(1, 2)*n.Z
	z := m.At(2, 0)*n.X + m.At(2, 1)*n.Y + m.At(2, 2)*n.Z
	return vecmath.NewV3(x, y, z).Normalize()
}

// backfaceCulled implements the §4.G backface test: the view vector points
// from the face centroid back to the origin (camera). Faces whose centroid
// is within 1e-4 of the camera are rejected outright to avoid a near-zero
// normalize.
func backfaceCulled(n vecmath.V3, centroid vecmath.V3) bool {
	centroidLen := float32(math.Sqrt(float64(centroid.Dot(centroid))))
	if centroidLen < 1e-4 {
		return true
	}
	view := centroid.Scale(-1 / centroidLen)
	return n.Dot(view) <= 0
}
