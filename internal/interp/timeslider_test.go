package interp

import (
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"storyscroll/internal/choreography"
	"storyscroll/internal/mapview"
)

func timeSlide(start, end string, step float64, unit string) *choreography.Slide {
	return &choreography.Slide{
		TimeSlider: &choreography.TimeSlider{Start: start, End: end, Step: step, Unit: unit},
	}
}

func TestTimeSliderSnapUp(t *testing.T) {
	// midpoint of [Jan 1, Jan 10] is 4.5 days in; ceil to the 5th day
	// boundary lands on Jan 6
	cur := timeSlide("2020-01-01", "2020-01-10", 1, "days")

	view := mapview.NewFake(false)
	New(view, false, zaptest.NewLogger(t)).Apply(cur, nil, 0.5)

	snap := view.Snapshot()
	if snap.Extent == nil {
		t.Fatal("expected a time extent")
	}
	if snap.Extent.Start != nil {
		t.Error("interpolated extent must be open at the start")
	}
	want := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	if !snap.Extent.End.Equal(want) {
		t.Errorf("expected end %v, got %v", want, snap.Extent.End)
	}
	if !snap.TimeStopped {
		t.Error("playback must be stopped")
	}
}

func TestTimeSliderBoundaries(t *testing.T) {
	cur := timeSlide("2020-01-01", "2020-01-10", 1, "days")

	for _, tc := range []struct {
		progress float64
		want     time.Time
	}{
		{0, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{1, time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)},
	} {
		view := mapview.NewFake(false)
		New(view, false, zaptest.NewLogger(t)).Apply(cur, nil, tc.progress)
		got := view.Snapshot().Extent.End
		if !got.Equal(tc.want) {
			t.Errorf("progress %v: expected %v, got %v", tc.progress, tc.want, got)
		}
	}
}

func TestTimeSliderZeroStepSkipsSnapping(t *testing.T) {
	cur := timeSlide("2020-01-01", "2020-01-02", 0, "days")

	view := mapview.NewFake(false)
	New(view, false, zaptest.NewLogger(t)).Apply(cur, nil, 0.25)

	want := time.Date(2020, 1, 1, 6, 0, 0, 0, time.UTC)
	got := view.Snapshot().Extent.End
	if !got.Equal(want) {
		t.Errorf("expected unsnapped end %v, got %v", want, got)
	}
}

func TestTimeSliderUnits(t *testing.T) {
	cases := []struct {
		unit string
		ms   float64
	}{
		{"milliseconds", 1},
		{"seconds", 1000},
		{"minutes", 60 * 1000},
		{"hours", 3600 * 1000},
		{"days", 24 * 3600 * 1000},
		{"weeks", 7 * 24 * 3600 * 1000},
		{"months", 30 * 24 * 3600 * 1000},
		{"years", 365 * 24 * 3600 * 1000},
	}
	for _, c := range cases {
		got, ok := choreography.StepMillis(1, c.unit)
		if !ok || got != c.ms {
			t.Errorf("StepMillis(1, %s): expected %v, got %v (ok=%v)", c.unit, c.ms, got, ok)
		}
	}
	if _, ok := choreography.StepMillis(1, "fortnights"); ok {
		t.Error("unknown unit must not convert")
	}
}

func TestTimeSliderMalformedIsolated(t *testing.T) {
	// a bad time slider must not block the environment handler
	cur := timeSlide("not-a-date", "2020-01-10", 1, "days")
	cur.Environment = &choreography.Environment{
		Lighting: &choreography.Lighting{Type: "sun", Datetime: "2020-06-01T12:00:00Z"},
	}
	next := &choreography.Slide{
		Environment: &choreography.Environment{
			Lighting: &choreography.Lighting{Type: "sun", Datetime: "2020-06-02T12:00:00Z"},
		},
	}

	view := mapview.NewFake(false)
	New(view, false, zaptest.NewLogger(t)).Apply(cur, next, 0.5)

	snap := view.Snapshot()
	if snap.Extent != nil {
		t.Error("malformed time slider must not set an extent")
	}
	if snap.Env == nil {
		t.Error("environment must still apply when the time slider fails")
	}
}
