package interp

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"storyscroll/internal/choreography"
	"storyscroll/internal/mapview"
)

func f(v float64) *float64 { return &v }

func cameraSlide(x, y, z, heading, tilt float64) *choreography.Slide {
	return &choreography.Slide{
		Viewpoint: &choreography.Viewpoint{
			Camera: &choreography.Camera{
				Position: choreography.Position{X: x, Y: y, Z: z},
				Heading:  heading,
				Tilt:     tilt,
			},
		},
	}
}

func TestCameraBoundaryIdempotence(t *testing.T) {
	cur := cameraSlide(0, 0, 1000, 0, 10)
	next := cameraSlide(100, 50, 2000, 90, 40)

	for _, tc := range []struct {
		progress float64
		want     *choreography.Camera
	}{
		{0, cur.Viewpoint.Camera},
		{1, next.Viewpoint.Camera},
	} {
		view := mapview.NewFake(true)
		New(view, false, zaptest.NewLogger(t)).Apply(cur, next, tc.progress)

		snap := view.Snapshot()
		if snap.LastTarget == nil || snap.LastTarget.Camera == nil {
			t.Fatalf("progress %v: expected a camera target", tc.progress)
		}
		if *snap.LastTarget.Camera != *tc.want {
			t.Errorf("progress %v: expected %+v, got %+v", tc.progress, *tc.want, *snap.LastTarget.Camera)
		}
	}
}

func TestCameraEasedMidpoint(t *testing.T) {
	// u = easeInOut(0.5) = 0.5, so the midpoint is the plain average
	cur := cameraSlide(0, 0, 0, 0, 0)
	next := cameraSlide(100, 200, 400, 90, 60)

	view := mapview.NewFake(true)
	New(view, false, zaptest.NewLogger(t)).Apply(cur, next, 0.5)

	cam := view.Snapshot().LastTarget.Camera
	if cam.Position.X != 50 || cam.Position.Y != 100 || cam.Position.Z != 200 {
		t.Errorf("unexpected midpoint position %+v", cam.Position)
	}
	if cam.Heading != 45 || cam.Tilt != 30 {
		t.Errorf("unexpected midpoint heading/tilt %v/%v", cam.Heading, cam.Tilt)
	}
}

func TestCameraRequiresBothEndpoints(t *testing.T) {
	cur := cameraSlide(0, 0, 0, 0, 0)
	next := &choreography.Slide{Viewpoint: &choreography.Viewpoint{}}

	view := mapview.NewFake(true)
	New(view, false, zaptest.NewLogger(t)).Apply(cur, next, 0.5)

	if view.Snapshot().GoToCalls != 0 {
		t.Error("missing next camera must abort camera interpolation for the tick")
	}
}

func TestMissingNextViewpointIsNoOp(t *testing.T) {
	cur := cameraSlide(0, 0, 0, 0, 0)
	next := &choreography.Slide{}

	view := mapview.NewFake(true)
	New(view, false, zaptest.NewLogger(t)).Apply(cur, next, 0.5)
	New(view, false, zaptest.NewLogger(t)).Apply(cur, nil, 0.5)

	if view.Snapshot().GoToCalls != 0 {
		t.Error("missing next viewpoint must not mutate the view")
	}
}

func TestFlatViewpointInterpolation(t *testing.T) {
	cur := &choreography.Slide{Viewpoint: &choreography.Viewpoint{
		Rotation:       f(0),
		Scale:          f(1000),
		TargetGeometry: &choreography.Extent{XMin: 0, YMin: 0, XMax: 10, YMax: 10},
	}}
	next := &choreography.Slide{Viewpoint: &choreography.Viewpoint{
		Rotation:       f(90),
		Scale:          f(3000),
		TargetGeometry: &choreography.Extent{XMin: 10, YMin: 10, XMax: 30, YMax: 30},
	}}

	view := mapview.NewFake(false)
	New(view, false, zaptest.NewLogger(t)).Apply(cur, next, 0.5)

	target := view.Snapshot().LastTarget
	if target == nil {
		t.Fatal("expected a viewpoint target")
	}
	if *target.Rotation != 45 {
		t.Errorf("expected rotation 45, got %v", *target.Rotation)
	}
	if target.Scale != nil {
		t.Error("scale must not be set outside fit-to-scale mode")
	}
	want := choreography.Extent{XMin: 5, YMin: 5, XMax: 20, YMax: 20}
	if *target.TargetGeometry != want {
		t.Errorf("expected geometry %+v, got %+v", want, *target.TargetGeometry)
	}
}

func TestFlatViewpointFitToScale(t *testing.T) {
	cur := &choreography.Slide{Viewpoint: &choreography.Viewpoint{
		Scale:          f(1000),
		TargetGeometry: &choreography.Extent{XMax: 10, YMax: 10},
	}}
	next := &choreography.Slide{Viewpoint: &choreography.Viewpoint{
		Scale:          f(3000),
		TargetGeometry: &choreography.Extent{XMax: 30, YMax: 30},
	}}

	view := mapview.NewFake(false)
	New(view, true, zaptest.NewLogger(t)).Apply(cur, next, 0.5)

	target := view.Snapshot().LastTarget
	if target == nil || target.Scale == nil {
		t.Fatal("fit-to-scale mode must apply the interpolated scale")
	}
	if *target.Scale != 2000 {
		t.Errorf("expected scale 2000, got %v", *target.Scale)
	}
}

func TestFlatViewpointOneSidedFields(t *testing.T) {
	// rotation present only on the current side passes through unmodified
	cur := &choreography.Slide{Viewpoint: &choreography.Viewpoint{
		Rotation:       f(30),
		TargetGeometry: &choreography.Extent{XMax: 10, YMax: 10},
	}}
	next := &choreography.Slide{Viewpoint: &choreography.Viewpoint{
		TargetGeometry: &choreography.Extent{XMax: 30, YMax: 30},
	}}

	view := mapview.NewFake(false)
	New(view, false, zaptest.NewLogger(t)).Apply(cur, next, 0.75)

	target := view.Snapshot().LastTarget
	if target == nil || target.Rotation == nil || *target.Rotation != 30 {
		t.Errorf("one-sided rotation must pass through, got %+v", target)
	}
}

func TestFlatViewpointMissingGeometry(t *testing.T) {
	cur := &choreography.Slide{Viewpoint: &choreography.Viewpoint{Rotation: f(0)}}
	next := &choreography.Slide{Viewpoint: &choreography.Viewpoint{Rotation: f(90)}}

	view := mapview.NewFake(false)
	// must not panic or navigate; the error is logged and isolated
	New(view, false, zaptest.NewLogger(t)).Apply(cur, next, 0.5)

	if view.Snapshot().GoToCalls != 0 {
		t.Error("geometry-less pair must not navigate")
	}
}

func TestNavigationRejectionIsContained(t *testing.T) {
	cur := cameraSlide(0, 0, 0, 0, 0)
	next := cameraSlide(1, 1, 1, 1, 1)

	view := mapview.NewFake(true)
	view.RejectNav = true
	// logged, not raised; no retry
	New(view, false, zaptest.NewLogger(t)).Apply(cur, next, 0.5)
}
