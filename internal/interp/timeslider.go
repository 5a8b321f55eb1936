package interp

import (
	"fmt"
	"math"
	"time"

	"storyscroll/internal/choreography"
	"storyscroll/internal/mapview"
)

// applyTimeSlider moves the visible time extent through the current slide's
// [start,end] window. Raw progress is used here, not the eased curve: time
// should track the scroll position linearly. The interpolated offset snaps
// up to the next step boundary and the extent is left open at the start so
// accumulated data stays visible.
func (e *Engine) applyTimeSlider(cur, _ *choreography.Slide, t float64) error {
	ts := cur.TimeSlider

	start, err := choreography.ParseInstant(ts.Start)
	if err != nil {
		return fmt.Errorf("time slider start: %w", err)
	}
	end, err := choreography.ParseInstant(ts.End)
	if err != nil {
		return fmt.Errorf("time slider end: %w", err)
	}

	span := end.Sub(start)
	offsetMs := t * float64(span.Milliseconds())

	stepMs, ok := choreography.StepMillis(ts.Step, ts.Unit)
	if !ok {
		return fmt.Errorf("unknown time slider unit %q", ts.Unit)
	}
	if stepMs > 0 {
		offsetMs = math.Ceil(offsetMs/stepMs) * stepMs
	}

	instant := start.Add(time.Duration(offsetMs) * time.Millisecond)
	if instant.Before(start) {
		instant = start
	}
	if instant.After(end) {
		instant = end
	}

	if err := e.view.SetTimeExtent(mapview.TimeExtent{End: &instant}); err != nil {
		return fmt.Errorf("unable to set time extent: %w", err)
	}
	e.view.StopTime()
	return nil
}
