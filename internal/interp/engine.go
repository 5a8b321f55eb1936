// Package interp turns a keyframe slide pair plus a continuous progress
// value into interpolated camera, time and environment state applied to the
// host map view.
package interp

import (
	"go.uber.org/zap"

	"storyscroll/internal/choreography"
	"storyscroll/internal/mapview"
)

// handler interpolates one slide property. A handler failure is isolated:
// it is logged and the remaining properties still apply.
type handler func(cur, next *choreography.Slide, t float64) error

// Engine dispatches over the properties present on the current slide.
type Engine struct {
	view       mapview.View
	fitToScale bool
	log        *zap.Logger
	handlers   []dispatchEntry
}

type dispatchEntry struct {
	key     string
	present func(*choreography.Slide) bool
	apply   handler
}

// New creates an engine over a host view. fitToScale selects atomic
// application of fully interpolated 2D viewpoints instead of letting the
// host fit the target extent.
func New(view mapview.View, fitToScale bool, log *zap.Logger) *Engine {
	e := &Engine{view: view, fitToScale: fitToScale, log: log}
	e.handlers = []dispatchEntry{
		{
			key:     "viewpoint",
			present: func(s *choreography.Slide) bool { return s.Viewpoint != nil },
			apply:   e.applyViewpoint,
		},
		{
			key:     "timeSlider",
			present: func(s *choreography.Slide) bool { return s.TimeSlider != nil },
			apply:   e.applyTimeSlider,
		},
		{
			key:     "environment",
			present: func(s *choreography.Slide) bool { return s.Environment != nil },
			apply:   e.applyEnvironment,
		},
	}
	return e
}

// Apply interpolates between cur and next at progress t and applies the
// result. Properties absent from the current slide are skipped; a failing
// property is logged and does not abort the others.
func (e *Engine) Apply(cur, next *choreography.Slide, t float64) {
	if cur == nil {
		return
	}
	for _, h := range e.handlers {
		if !h.present(cur) {
			continue
		}
		if err := h.apply(cur, next, t); err != nil {
			e.log.Warn("Keyframe property skipped for this tick",
				zap.String("property", h.key), zap.Error(err))
		}
	}
}

// easeInOut is the quadratic ease-in-out used for spatial motion.
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// lerp is plain linear interpolation.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpOpt interpolates two optional values. A value present on only one side
// is used unmodified (degenerate lerp); both absent yields nil.
func lerpOpt(a, b *float64, t float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		v := lerp(*a, *b, t)
		return &v
	}
}
