// Package frame implements the per-frame orchestrator: it turns
// accumulated input into a camera/light transform, drives the
// transform -> bin -> rasterize -> composite pipeline each frame over the
// job package's worker pool, and exposes frame pacing and the external
// hand-off interfaces (framebuffer, input events, pump callback) named in
// spec.md §6.
package frame

import (
	"log/slog"

	"github.com/lucidpixel/raster3d/mesh"
	"github.com/lucidpixel/raster3d/tile"
)

// Config bundles the orchestrator's tunable settings.
// Loaded once at New via functional options, matching the teacher's single
// piece of runtime-tunable state (go-highway's dispatch env toggles):
// there is no config-file format here, only plain Go options.
type Config struct {
	TileEdge       int
	VertexBudget   int
	TriangleBudget int
	// TargetFPS caps RenderFrame's pace: it sleeps off whatever budget a
	// frame didn't use to hold roughly 1/TargetFPS seconds per frame.
	// <= 0 disables the cap.
	TargetFPS float64
	FOVMin         float32
	FOVMax         float32
	FOVStep        float32
	LightDistance  float32
	ZOffset        float32
	AppName        string
	Logger         *slog.Logger
}

// Option mutates a Config at construction time.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		TileEdge:       tile.DefaultEdge,
		VertexBudget:   mesh.DefaultVertexBudget,
		TriangleBudget: mesh.DefaultTriangleBudget,
		TargetFPS:      120,
		FOVMin:         20,
		FOVMax:         120,
		FOVStep:        1.5,
		LightDistance:  10,
		ZOffset:        5,
		AppName:        "raster3d",
		Logger:         slog.Default(),
	}
}

// WithTileEdge overrides the screen tile edge length.
func WithTileEdge(edge int) Option { return func(c *Config) { c.TileEdge = edge } }

// WithMeshletBudgets overrides the meshlet clustering budgets.
func WithMeshletBudgets(vertexMax, triangleMax int) Option {
	return func(c *Config) { c.VertexBudget = vertexMax; c.TriangleBudget = triangleMax }
}

// WithTargetFPS overrides the frame-rate cap RenderFrame sleeps to honor;
// <= 0 disables the cap entirely.
func WithTargetFPS(fps float64) Option { return func(c *Config) { c.TargetFPS = fps } }

// WithFOVRange overrides the FOV clamp bounds and per-event step, in degrees.
func WithFOVRange(min, max, step float32) Option {
	return func(c *Config) { c.FOVMin = min; c.FOVMax = max; c.FOVStep = step }
}

// WithLightDistance overrides the directional light's orbit radius.
func WithLightDistance(d float32) Option { return func(c *Config) { c.LightDistance = d } }

// WithZOffset overrides the fixed camera-space z translation applied to
// every vertex after rotation (object placement distance from the eye).
func WithZOffset(z float32) Option { return func(c *Config) { c.ZOffset = z } }

// WithAppName sets the application name used in the title string.
func WithAppName(name string) Option { return func(c *Config) { c.AppName = name } }

// WithLogger overrides the structured logger used for submission-failure,
// frame-drop, and cache-regeneration events.
func WithLogger(l *slog.Logger) Option { return func(c *Config) { c.Logger = l } }
