package frame

import (
	"math"

	"github.com/lucidpixel/raster3d/bin"
	"github.com/lucidpixel/raster3d/vecmath"
)

// sentinelCoord marks a vertex projected to a camera-space point at or
// behind the near plane (camera_z <= 0.1); spec.md §4.H treats this as a
// conservative rejection of the whole containing triangle, matched by
// raster.facePoints' isSentinel check.
const sentinelCoord = -1000

const nearPlane = 0.1

// rotationMatrix composes R = rotateY(yaw) * rotateX(pitch), the yaw-then-
// pitch order spec.md §4.A names for the orchestrator.
func rotationMatrix(yaw, pitch float32) vecmath.Mat4 {
	return vecmath.Multiply(vecmath.RotateY(yaw), vecmath.RotateX(pitch))
}

// lightDirection derives a unit light direction by orbiting a point at
// distance lightDistance along +Z with the same yaw/pitch composition used
// for the camera's own rotation.
func lightDirection(yaw, pitch, lightDistance float32) vecmath.V3 {
	orbit := rotationMatrix(yaw, pitch)
	pos := vecmath.MulVec3(orbit, vecmath.NewV3(0, 0, lightDistance))
	return pos.Normalize()
}

// projectionScales returns the x/y NDC scale factors spec.md §4.A's
// perspective layout uses (cot(fov/2)/aspect and cot(fov/2)), derived
// directly rather than through a 4x4 matrix since the orchestrator's
// per-vertex path is a direct divide, not a matrix multiply.
func projectionScales(fovDeg, aspect float32) (xScale, yScale float32) {
	halfFOV := float64(fovDeg) * math.Pi / 180 / 2
	cot := float32(1 / math.Tan(halfFOV))
	return cot / aspect, cot
}

// transformVertex applies R, then a fixed camera-space z translation, per
// spec.md §4.H step 4: t = R*v + (0,0,zOffset).
func transformVertex(v vecmath.V3, r vecmath.Mat4, zOffset float32) vecmath.V3 {
	t := vecmath.MulVec3(r, v)
	t.Z += zOffset
	return t
}

// projectVertex maps a camera-space point to integer screen coordinates,
// or the sentinel if it lies at or behind the near plane.
func projectVertex(t vecmath.V3, xScale, yScale float32, screenW, screenH int) bin.Point2 {
	if t.Z <= nearPlane {
		return bin.Point2{X: sentinelCoord, Y: sentinelCoord}
	}
	ndcX := t.X / t.Z * xScale
	ndcY := t.Y / t.Z * yScale
	cx := float32(screenW) / 2
	cy := float32(screenH) / 2
	return bin.Point2{
		X: roundf32(ndcX*cx + cx),
		Y: roundf32(-ndcY*cy + cy),
	}
}

func roundf32(v float32) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return int(v - 0.5)
}
