package frame

import "fmt"

// pacing tracks a running FPS counter and average frame time, updated once
// per wall-clock second, and formats the window title string spec.md §6
// specifies.
type pacing struct {
	appName string

	framesThisSecond int
	secondAccumNanos int64
	lastFPS          int
	lastAvgFrameMs   float64

	title string
}

func newPacing(appName string) *pacing {
	return &pacing{appName: appName, title: fmt.Sprintf("%s | FPS: 0 | Frame: 0.0ms", appName)}
}

// recordFrame folds one frame's duration into the running counters,
// refreshing the title string once per elapsed wall-clock second.
func (p *pacing) recordFrame(frameNanos int64) {
	p.framesThisSecond++
	p.secondAccumNanos += frameNanos
	if p.secondAccumNanos < int64(1e9) {
		return
	}
	p.lastFPS = p.framesThisSecond
	p.lastAvgFrameMs = float64(p.secondAccumNanos) / float64(p.framesThisSecond) / 1e6
	p.title = fmt.Sprintf("%s | FPS: %d | Frame: %.1fms", p.appName, p.lastFPS, p.lastAvgFrameMs)
	p.framesThisSecond = 0
	p.secondAccumNanos = 0
}

// Title returns the most recently formatted window title string.
func (p *pacing) Title() string { return p.title }
