package frame

import "github.com/lucidpixel/raster3d/vecmath"

// lightMarkerColor is cyan, the debug light-position indicator.
const lightMarkerColor = 0xFF00FFFF

const lightMarkerRadiusPx = 4

// drawLightMarker projects the light's position (at cfg.LightDistance
// along the orbited +Z axis, matching lightDirection) to screen space and
// draws a small filled disc, occlusion-tested against the just-rasterized
// tile depth buffers: the marker is skipped wherever the mesh is already
// nearer than the light at that pixel.
func (o *Orchestrator) drawLightMarker(fb *Framebuffer, lightDir vecmath.V3, r vecmath.Mat4) {
	lightPos := lightDir.Scale(o.conf.LightDistance)
	camera := transformVertex(lightPos, r, o.conf.ZOffset)
	aspect := float32(o.grid.ScreenWidth) / float32(o.grid.ScreenHeight)
	xScale, yScale := projectionScales(o.state.FOVDeg, aspect)
	center := projectVertex(camera, xScale, yScale, o.grid.ScreenWidth, o.grid.ScreenHeight)
	if center.X == sentinelCoord && center.Y == sentinelCoord {
		return
	}

	for dy := -lightMarkerRadiusPx; dy <= lightMarkerRadiusPx; dy++ {
		for dx := -lightMarkerRadiusPx; dx <= lightMarkerRadiusPx; dx++ {
			if dx*dx+dy*dy > lightMarkerRadiusPx*lightMarkerRadiusPx {
				continue
			}
			x, y := center.X+dx, center.Y+dy
			if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
				continue
			}
			if o.markerOccluded(x, y, camera.Z) {
				continue
			}
			fb.set(x, y, lightMarkerColor)
		}
	}
}

// markerOccluded reports whether the mesh's rasterized depth at screen
// pixel (x,y) is nearer than the light marker's own camera-space depth.
func (o *Orchestrator) markerOccluded(x, y int, markerDepth float32) bool {
	col := x / o.grid.Edge
	row := y / o.grid.Edge
	rect, ok := o.grid.TileAt(col, row)
	if !ok {
		return false
	}
	buf := &o.grid.Buffers[rect.Index]
	idx := buf.Index(x-rect.X, y-rect.Y)
	if idx < 0 {
		return false
	}
	return buf.Depth[idx] < markerDepth
}
