package frame

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lucidpixel/raster3d/bin"
	"github.com/lucidpixel/raster3d/job"
	"github.com/lucidpixel/raster3d/mesh"
	"github.com/lucidpixel/raster3d/meshletcache"
	"github.com/lucidpixel/raster3d/raster"
	"github.com/lucidpixel/raster3d/tile"
	"github.com/lucidpixel/raster3d/vecmath"
)

// ErrInterrupted is returned by RenderFrame when the caller's pump
// callback requested a stop; the caller is expected to exit its loop.
var ErrInterrupted = errors.New("frame: render interrupted by pump")

// Orchestrator drives the per-frame pipeline: it owns the mesh, tile grid,
// and job pool, and exclusively mutates camera/light/render-mode state
// between frames. It is not safe for concurrent use by multiple
// goroutines; the caller's render loop owns it.
type Orchestrator struct {
	log  *slog.Logger
	conf Config

	mesh        *mesh.Mesh
	sourcePath  string
	texture     *raster.Texture
	grid        *tile.Grid
	pool        *job.Pool
	arena       *frameArena
	state       *State
	pacing      *pacing
	frameNumber int64
}

// New constructs an orchestrator for m, rendering into a screenW x
// screenH tile grid. sourcePath identifies the mesh for meshlet cache
// lookups (see meshletcache.Path); an empty sourcePath always regenerates
// and never persists meshlets.
func New(m *mesh.Mesh, screenW, screenH int, sourcePath string, opts ...Option) *Orchestrator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	o := &Orchestrator{
		log:        cfg.Logger,
		conf:       cfg,
		mesh:       m,
		sourcePath: sourcePath,
		grid:       tile.NewGrid(screenW, screenH, cfg.TileEdge),
		pool:       job.New(),
		state:      newState(cfg),
		pacing:     newPacing(cfg.AppName),
	}
	o.arena = newFrameArena(o.grid, len(m.Vertices))
	o.loadOrBuildMeshlets()
	return o
}

// SetTexture binds (or clears, with nil) the texture sampled by textured
// faces.
func (o *Orchestrator) SetTexture(tex *raster.Texture) { o.texture = tex }

// State returns the orchestrator's mutable camera/light/render-mode state,
// for callers that want to inspect it (e.g. to decide whether to quit).
func (o *Orchestrator) State() *State { return o.state }

// Title returns the most recently formatted window title string.
func (o *Orchestrator) Title() string { return o.pacing.Title() }

// Shutdown stops the job pool's worker goroutines, joining them before
// returning. In-flight jobs are allowed to complete first.
func (o *Orchestrator) Shutdown() { o.pool.Shutdown() }

func (o *Orchestrator) loadOrBuildMeshlets() {
	if o.sourcePath == "" {
		o.mesh.Meshlets = mesh.GenerateMeshlets(o.mesh, o.conf.VertexBudget, o.conf.TriangleBudget)
		return
	}
	path := meshletcache.Path(o.sourcePath)
	meshlets, err := meshletcache.Load(path, len(o.mesh.Vertices), len(o.mesh.Triangles))
	if err == nil {
		o.mesh.Meshlets = meshlets
		return
	}
	if !errors.Is(err, meshletcache.ErrCacheMiss) {
		o.log.Warn("meshlet cache read failed, regenerating", "path", path, "error", err)
	} else {
		o.log.Info("meshlet cache miss, regenerating", "path", path)
	}
	o.mesh.Meshlets = mesh.GenerateMeshlets(o.mesh, o.conf.VertexBudget, o.conf.TriangleBudget)
	if err := meshletcache.Store(path, len(o.mesh.Vertices), len(o.mesh.Triangles), o.mesh.Meshlets); err != nil {
		o.log.Warn("meshlet cache write failed", "path", path, "error", err)
	}
}

// RenderFrame runs one full pass of spec.md §4.H steps 1-10: fold input,
// compute the camera/light transform, project vertices, bin, rasterize
// every nonempty tile in parallel, composite into fb, and update pacing.
// pump may be nil. Returns ErrInterrupted if pump ever returned false
// during the frame's completion wait; fb still holds a fully composited
// frame's worth of pixels (the in-flight frame is always finished, never
// torn) in that case.
func (o *Orchestrator) RenderFrame(fb *Framebuffer, events []InputEvent, pump PumpFunc) error {
	start := time.Now()
	o.frameNumber++

	// Step 1: accumulate input into camera/light/render-mode state.
	o.state.Apply(events, o.conf)

	// Step 2-3: rotation, light direction, projection scales.
	r := rotationMatrix(o.state.Yaw, o.state.Pitch)
	lightDir := lightDirection(o.state.LightYaw, o.state.LightPitch, o.conf.LightDistance)
	aspect := float32(o.grid.ScreenWidth) / float32(o.grid.ScreenHeight)
	xScale, yScale := projectionScales(o.state.FOVDeg, aspect)

	// Use the next arena slot: last frame's arrays remain untouched and
	// valid until this point, honoring the deferred-drop double buffer.
	o.arena.swap()
	bins, projected, camera := o.arena.current()

	// Step 4: transform + project every vertex.
	for i, v := range o.mesh.Vertices {
		camera[i] = transformVertex(v, r, o.conf.ZOffset)
		projected[i] = projectVertex(camera[i], xScale, yScale, o.grid.ScreenWidth, o.grid.ScreenHeight)
	}

	// Step 5: clear tile buffers.
	o.grid.ClearAll()

	// Step 6: binning.
	bins.Reset()
	for i, tri := range o.mesh.Triangles {
		p0, p1, p2 := projected[tri.V0], projected[tri.V1], projected[tri.V2]
		bins.Add(o.grid, i, p0, p1, p2)
	}

	// Step 7: submit one job per nonempty tile, wait for completion.
	interrupted, err := o.runTileJobs(bins, projected, camera, r, lightDir, pump)
	if err != nil {
		o.log.Warn("frame dropped: job submission failed", "frame", o.frameNumber, "error", err)
		return nil
	}

	// Step 8: composite.
	for _, rect := range o.grid.Tiles {
		fb.blitTile(&o.grid.Buffers[rect.Index], rect)
	}

	// Step 9: optional debug overlays.
	if o.state.ShowTileBorders {
		fb.drawTileBorders(o.grid)
	}
	if o.state.ShowLightMarker {
		o.drawLightMarker(fb, lightDir, r)
	}

	// Step 10: cap the frame rate at Config.TargetFPS by sleeping off
	// whatever budget this frame didn't use; TargetFPS <= 0 disables the
	// cap (render as fast as the pipeline allows).
	if o.conf.TargetFPS > 0 {
		budget := time.Duration(float64(time.Second) / o.conf.TargetFPS)
		if elapsed := time.Since(start); elapsed < budget {
			time.Sleep(budget - elapsed)
		}
	}

	o.pacing.recordFrame(time.Since(start).Nanoseconds())

	if interrupted {
		return ErrInterrupted
	}
	return nil
}

// runTileJobs submits one child job per nonempty tile under a per-frame
// root job, then busy-waits on the root's completion, invoking pump each
// spin. A submission failure abandons the remaining tiles for this frame
// (the child job that failed to submit is released so the root can still
// complete once the already-submitted children finish) and is
// reported via err; the caller logs it and drops the frame, per spec.md
// §4.H's failure semantics.
func (o *Orchestrator) runTileJobs(bins *bin.Bins, projected []bin.Point2, camera []vecmath.V3, r vecmath.Mat4, lightDir vecmath.V3, pump PumpFunc) (interrupted bool, err error) {
	root := job.NewRootJob()
	for _, rect := range o.grid.Tiles {
		ids := bins.Tile(rect.Index)
		if len(ids) == 0 {
			continue
		}
		buf := &o.grid.Buffers[rect.Index]
		ctx := &raster.Context{
			Tile:        rect,
			Buffer:      buf,
			TriangleIDs: ids,
			Mesh:        o.mesh,
			Projected:   projected,
			Camera:      camera,
			Rotation:    r,
			LightDir:    lightDir,
			Wireframe:   o.state.Wireframe,
			Texture:     o.texture,
		}
		j := job.NewChildJob(func(any) { raster.RasterizeTile(ctx) }, nil, root)
		if submitErr := o.pool.Submit(j); submitErr != nil {
			j.Release()
			err = fmt.Errorf("submitting tile %d: %w", rect.Index, submitErr)
			break
		}
	}
	root.Release()

	waitErr := job.WaitWithPump(root, func() bool {
		if pump == nil {
			return true
		}
		return pump(o.state)
	})
	if errors.Is(waitErr, job.ErrInterrupted) {
		interrupted = true
	}
	return interrupted, err
}
