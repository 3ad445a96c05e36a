package raster

import (
	"github.com/lucidpixel/raster3d/bin"
	"github.com/lucidpixel/raster3d/mesh"
	"github.com/lucidpixel/raster3d/tile"
	"github.com/lucidpixel/raster3d/vecmath"
)

// wireColor is the fixed wireframe overlay color: opaque white.
const wireColor = 0xFFFFFFFF

// degenerateEps is the minimum |denom| for a triangle's barycentric basis
// to be considered non-degenerate.
const degenerateEps = 1e-6

// Context is the read-only-plus-one-exclusive-write-target state a tile
// rasterization job needs. Every field except Buffer is shared read-only
// across every concurrently running tile job in a frame.
type Context struct {
	Tile        tile.Rect
	Buffer      *tile.Buffer // exclusively owned by this job for the frame
	TriangleIDs []int        // this tile's bin list, mesh order
	Mesh        *mesh.Mesh
	Projected   []bin.Point2 // screen-space coords, parallel to Mesh.Vertices
	Camera      []vecmath.V3 // camera-space positions, parallel to Mesh.Vertices
	Rotation    vecmath.Mat4 // for transforming face normals
	LightDir    vecmath.V3
	Wireframe   bool
	Texture     *Texture // nil if the mesh/material has no texture bound
}

// RasterizeTile fills ctx.Buffer with every triangle in ctx.TriangleIDs,
// per spec: fill pass with depth test, then (if enabled) a wireframe
// overlay pass that bypasses the depth test.
func RasterizeTile(ctx *Context) {
	for _, triIdx := range ctx.TriangleIDs {
		tri := ctx.Mesh.Triangles[triIdx]
		if tri.CullFill {
			continue
		}
		p0, p1, p2, ok := facePoints(ctx, tri)
		if !ok {
			continue
		}
		c0, c1, c2 := ctx.Camera[tri.V0], ctx.Camera[tri.V1], ctx.Camera[tri.V2]
		n := transformNormal(ctx.Rotation, ctx.Mesh.FaceNormals[triIdx])
		centroid := c0.Add(c1).Add(c2).Scale(1.0 / 3.0)
		if backfaceCulled(n, centroid) {
			continue
		}
		factor := intensity(n.Dot(ctx.LightDir))
		fillTriangle(ctx, tri, p0, p1, p2, c0, c1, c2, factor)
	}

	if !ctx.Wireframe {
		return
	}
	for _, triIdx := range ctx.TriangleIDs {
		tri := ctx.Mesh.Triangles[triIdx]
		if tri.CullWire {
			continue
		}
		p0, p1, p2, ok := facePoints(ctx, tri)
		if !ok {
			continue
		}
		c0, c1, c2 := ctx.Camera[tri.V0], ctx.Camera[tri.V1], ctx.Camera[tri.V2]
		n := transformNormal(ctx.Rotation, ctx.Mesh.FaceNormals[triIdx])
		centroid := c0.Add(c1).Add(c2).Scale(1.0 / 3.0)
		if backfaceCulled(n, centroid) {
			continue
		}
		drawWireframe(ctx, p0, p1, p2)
	}
}

// sentinelCoord matches the orchestrator's behind-near-plane projection
// sentinel (frame/transform.go's projectVertex); any triangle referencing
// it is rejected.
const sentinelCoord = -1000

func facePoints(ctx *Context, tri mesh.Triangle) (p0, p1, p2 bin.Point2, ok bool) {
	p0, p1, p2 = ctx.Projected[tri.V0], ctx.Projected[tri.V1], ctx.Projected[tri.V2]
	if isSentinel(p0) || isSentinel(p1) || isSentinel(p2) {
		return p0, p1, p2, false
	}
	return p0, p1, p2, true
}

func isSentinel(p bin.Point2) bool { return p.X == sentinelCoord && p.Y == sentinelCoord }

func fillTriangle(ctx *Context, tri mesh.Triangle, p0, p1, p2 bin.Point2, c0, c1, c2 vecmath.V3, factor float32) {
	v0x, v0y := float32(p0.X-ctx.Tile.X), float32(p0.Y-ctx.Tile.Y)
	v1x, v1y := float32(p1.X-ctx.Tile.X), float32(p1.Y-ctx.Tile.Y)
	v2x, v2y := float32(p2.X-ctx.Tile.X), float32(p2.Y-ctx.Tile.Y)

	minX, maxX := clampRange(minf3(v0x, v1x, v2x), maxf3(v0x, v1x, v2x), ctx.Tile.Width)
	minY, maxY := clampRange(minf3(v0y, v1y, v2y), maxf3(v0y, v1y, v2y), ctx.Tile.Height)
	if minX > maxX || minY > maxY {
		return
	}

	denom := (v1y-v2y)*(v0x-v2x) + (v2x-v1x)*(v0y-v2y)
	if absf32(denom) < degenerateEps {
		return
	}

	baseColor := tri.BaseColor
	hasUV := len(ctx.Mesh.TexCoords) == len(ctx.Mesh.Vertices) && len(ctx.Mesh.TexCoords) > 0
	var uv0, uv1, uv2 vecmath.V2
	if hasUV {
		uv0, uv1, uv2 = ctx.Mesh.TexCoords[tri.V0], ctx.Mesh.TexCoords[tri.V1], ctx.Mesh.TexCoords[tri.V2]
	}

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			l0 := ((v1y-v2y)*(px-v2x) + (v2x-v1x)*(py-v2y)) / denom
			l1 := ((v2y-v0y)*(px-v2x) + (v0x-v2x)*(py-v2y)) / denom
			l2 := 1 - l0 - l1
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}
			idx := ctx.Buffer.Index(x, y)
			if idx < 0 {
				continue
			}
			depth := l0*c0.Z + l1*c1.Z + l2*c2.Z
			if depth >= ctx.Buffer.Depth[idx] {
				continue
			}
			color := baseColor
			if ctx.Texture != nil && hasUV {
				u := l0*uv0.X + l1*uv1.X + l2*uv2.X
				v := l0*uv0.Y + l1*uv1.Y + l2*uv2.Y
				color = ctx.Texture.Sample(u, v)
			}
			ctx.Buffer.Pixels[idx] = shade(color, factor)
			ctx.Buffer.Depth[idx] = depth
		}
	}
}

func clampRange(lo, hi float32, size int) (int, int) {
	loI := int(lo)
	hiI := int(hi)
	if loI < 0 {
		loI = 0
	}
	if hiI > size-1 {
		hiI = size - 1
	}
	return loI, hiI
}

func minf3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func maxf3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
