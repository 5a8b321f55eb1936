// Package applier applies a slide's absolute state to the host view with no
// interpolation. It runs on first load, on hash navigation when the story is
// not embedded, and on slide-index transitions during embedded tracking.
package applier

import (
	"go.uber.org/zap"

	"storyscroll/internal/choreography"
	"storyscroll/internal/mapview"
)

// Applier snaps the view to a slide's target state.
type Applier struct {
	view     mapview.View
	log      *zap.Logger
	embedded bool
	skip     map[string]bool
}

// New creates an applier. When embedded, properties named in skip are not
// applied discretely: the embedded context already receives continuous
// updates for them and double application flickers.
func New(view mapview.View, embedded bool, skip []string, log *zap.Logger) *Applier {
	m := make(map[string]bool, len(skip))
	for _, k := range skip {
		m[k] = true
	}
	return &Applier{view: view, log: log, embedded: embedded, skip: m}
}

func (a *Applier) skipped(key string) bool {
	return a.embedded && a.skip[key]
}

// Apply sets the slide's state outright. Each property is independent;
// a failing property is logged and the rest still apply.
func (a *Applier) Apply(s *choreography.Slide, animate bool) {
	if s == nil {
		return
	}

	if s.Viewpoint != nil && !a.skipped("viewpoint") {
		if err := a.view.GoTo(*s.Viewpoint, animate); err != nil {
			a.log.Warn("Host view rejected slide viewpoint", zap.Error(err))
		}
	}

	if s.TimeSlider != nil && !a.skipped("timeSlider") {
		a.applyTimeSlider(s.TimeSlider)
	}

	if s.Environment != nil && !a.skipped("environment") {
		if err := a.view.SetEnvironment(*s.Environment); err != nil {
			a.log.Warn("Unable to apply slide environment", zap.Error(err))
		}
	}

	if s.LayerVisibility != nil && !a.skipped("layerVisibility") {
		if err := a.view.SetLayerVisibility(s.LayerVisibility); err != nil {
			a.log.Warn("Unable to apply layer visibility", zap.Error(err))
		}
	}

	if s.TrackRenderer != nil && !a.skipped("trackRenderer") {
		if err := a.view.SetTrackRenderer(s.TrackRenderer); err != nil {
			a.log.Warn("Unable to apply track renderer", zap.Error(err))
		}
	}
}

// applyTimeSlider sets the slide's full [start,end] extent, unlike the
// interpolated path which leaves the start open.
func (a *Applier) applyTimeSlider(ts *choreography.TimeSlider) {
	start, err := choreography.ParseInstant(ts.Start)
	if err != nil {
		a.log.Warn("Slide time slider start unparseable", zap.String("start", ts.Start))
		return
	}
	end, err := choreography.ParseInstant(ts.End)
	if err != nil {
		a.log.Warn("Slide time slider end unparseable", zap.String("end", ts.End))
		return
	}
	if err := a.view.SetTimeExtent(mapview.TimeExtent{Start: &start, End: &end}); err != nil {
		a.log.Warn("Unable to apply time extent", zap.Error(err))
		return
	}
	a.view.StopTime()
}
