package frame

// Action enumerates the abstract camera/light controls spec.md §6 names.
// Mapping a concrete keyboard/mouse device to these values is CLI/keybinding
// glue, explicitly out of scope for this module (spec.md §1); callers
// translate their own input source into a stream of Action values.
type Action int

const (
	ActionYawLeft Action = iota
	ActionYawRight
	ActionPitchUp
	ActionPitchDown
	ActionLightOrbitX
	ActionLightOrbitY
	ActionFOVIncrease
	ActionFOVDecrease
	ActionToggleWireframe
	ActionToggleTileBorders
	ActionToggleLightMarker
	ActionQuit
)

// InputEvent is one accumulated control input for the current frame.
// Delta carries the magnitude (radians for yaw/pitch/orbit actions,
// typically derived from a mouse motion delta or a fixed per-tick step);
// it is ignored for the discrete toggle/quit/FOV-step actions.
type InputEvent struct {
	Action Action
	Delta  float32
}

// State accumulates camera, light, and render-mode state across frames,
// per spec.md §4.H step 1.
type State struct {
	Yaw, Pitch           float32
	LightYaw, LightPitch float32
	FOVDeg               float32
	Wireframe            bool
	ShowTileBorders      bool
	ShowLightMarker      bool
	QuitRequested        bool
}

func newState(cfg Config) *State {
	return &State{FOVDeg: clampf32((cfg.FOVMin+cfg.FOVMax)/2, cfg.FOVMin, cfg.FOVMax)}
}

// Apply folds a frame's worth of input events into the accumulated state.
func (s *State) Apply(events []InputEvent, cfg Config) {
	for _, e := range events {
		switch e.Action {
		case ActionYawLeft:
			s.Yaw -= e.Delta
		case ActionYawRight:
			s.Yaw += e.Delta
		case ActionPitchUp:
			s.Pitch -= e.Delta
		case ActionPitchDown:
			s.Pitch += e.Delta
		case ActionLightOrbitX:
			s.LightYaw += e.Delta
		case ActionLightOrbitY:
			s.LightPitch += e.Delta
		case ActionFOVIncrease:
			s.FOVDeg = clampf32(s.FOVDeg+cfg.FOVStep, cfg.FOVMin, cfg.FOVMax)
		case ActionFOVDecrease:
			s.FOVDeg = clampf32(s.FOVDeg-cfg.FOVStep, cfg.FOVMin, cfg.FOVMax)
		case ActionToggleWireframe:
			s.Wireframe = !s.Wireframe
		case ActionToggleTileBorders:
			s.ShowTileBorders = !s.ShowTileBorders
		case ActionToggleLightMarker:
			s.ShowLightMarker = !s.ShowLightMarker
		case ActionQuit:
			s.QuitRequested = true
		}
	}
}

func clampf32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PumpFunc is invoked by the orchestrator between job-completion polls so
// the caller can keep draining an external event source (e.g. a window's
// OS message pump). Returning false marks the current frame as interrupted:
// RenderFrame still waits for outstanding jobs, composites the frame, and
// then returns ErrInterrupted.
type PumpFunc func(*State) bool
