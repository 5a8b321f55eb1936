package interp

import (
	"fmt"
	"strconv"
	"time"

	"storyscroll/internal/choreography"
)

// applyEnvironment interpolates lighting and weather magnitudes between two
// fully defined environments. Lighting and weather types are discrete: they
// snap to the next slide's value immediately while the magnitude fields
// underneath interpolate with raw progress. A pair missing either
// environment is a no-op.
func (e *Engine) applyEnvironment(cur, next *choreography.Slide, t float64) error {
	if next == nil || next.Environment == nil {
		return nil
	}
	a, b := cur.Environment, next.Environment

	out := choreography.Environment{
		AtmosphereEnabled: b.AtmosphereEnabled,
		StarsEnabled:      b.StarsEnabled,
	}

	if a.Lighting != nil && b.Lighting != nil {
		lighting := *b.Lighting // type snaps to the next slide
		lighting.Datetime = lerpDatetime(a.Lighting.Datetime, b.Lighting.Datetime, t)
		out.Lighting = &lighting
	} else if b.Lighting != nil {
		lighting := *b.Lighting
		out.Lighting = &lighting
	}

	if a.Weather != nil && b.Weather != nil {
		weather := choreography.Weather{Type: b.Weather.Type}
		weather.CloudCover = lerpMagnitude(a.Weather.CloudCover, b.Weather.CloudCover, t)
		weather.Precipitation = lerpMagnitude(a.Weather.Precipitation, b.Weather.Precipitation, t)
		out.Weather = &weather
	} else if b.Weather != nil {
		weather := *b.Weather
		out.Weather = &weather
	}

	if err := e.view.SetEnvironment(out); err != nil {
		return fmt.Errorf("unable to set environment: %w", err)
	}
	return nil
}

// lerpDatetime interpolates two lighting instants with raw progress. If
// either side does not parse, the current slide's raw value passes through.
func lerpDatetime(a, b string, t float64) string {
	ta, errA := choreography.ParseInstant(a)
	tb, errB := choreography.ParseInstant(b)
	if errA != nil || errB != nil {
		return a
	}
	span := tb.Sub(ta)
	return ta.Add(time.Duration(t * float64(span))).Format(time.RFC3339)
}

// lerpMagnitude interpolates two loosely typed numeric fields. Each field is
// guarded independently: if either side is not a parseable number, the
// current slide's raw value passes through instead of an interpolation.
func lerpMagnitude(a, b any, t float64) any {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if !okA || !okB {
		return a
	}
	return lerp(fa, fb, t)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
