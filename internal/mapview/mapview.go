// Package mapview declares the capability surface this program consumes from
// the host mapping widget. The widget itself is an external collaborator; the
// playback side depends only on this contract.
package mapview

import (
	"encoding/json"
	"time"

	"storyscroll/internal/choreography"
)

// TimeExtent is the visible window of the host time slider. A nil Start
// denotes an open-ended extent.
type TimeExtent struct {
	Start *time.Time
	End   *time.Time
}

// View is the host map surface. GoTo rejections (invalid viewpoints and the
// like) surface as errors and are logged at the call site without retry: the
// next scroll tick recomputes from scratch.
type View interface {
	// GoTo moves the view to the target viewpoint, optionally animated.
	GoTo(target choreography.Viewpoint, animate bool) error
	// HasCamera reports whether the view exposes a 3D camera.
	HasCamera() bool
	// SetTimeExtent replaces the time slider's visible extent.
	SetTimeExtent(extent TimeExtent) error
	// StopTime halts time slider playback.
	StopTime()
	// SetEnvironment replaces lighting/weather/sky state.
	SetEnvironment(env choreography.Environment) error
	// SetLayerVisibility toggles layers by name.
	SetLayerVisibility(vis map[string]bool) error
	// SetTrackRenderer replaces the track renderer definition.
	SetTrackRenderer(def json.RawMessage) error
}
