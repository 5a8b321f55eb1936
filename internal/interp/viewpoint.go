package interp

import (
	"errors"

	"go.uber.org/zap"

	"storyscroll/internal/choreography"
)

// ErrMissingGeometry marks a 2D viewpoint pair with no bounding geometry on
// either side.
var ErrMissingGeometry = errors.New("viewpoint pair carries no geometry")

// applyViewpoint interpolates camera or 2D viewpoint state. Both endpoints
// must define a viewpoint, otherwise the tick performs no view mutation at
// all: a half-defined pair has no meaningful in-between.
func (e *Engine) applyViewpoint(cur, next *choreography.Slide, t float64) error {
	if next == nil || next.Viewpoint == nil {
		return nil
	}
	u := easeInOut(t)

	if e.view.HasCamera() {
		return e.applyCamera(cur.Viewpoint, next.Viewpoint, u)
	}
	return e.applyFlat(cur.Viewpoint, next.Viewpoint, u)
}

// applyCamera handles the 3D path: position, heading and tilt lerp with the
// eased progress. Interpolation needs a camera on both endpoints.
func (e *Engine) applyCamera(a, b *choreography.Viewpoint, u float64) error {
	if a.Camera == nil || b.Camera == nil {
		return nil
	}
	cam := choreography.Camera{
		Position: choreography.Position{
			X: lerp(a.Camera.Position.X, b.Camera.Position.X, u),
			Y: lerp(a.Camera.Position.Y, b.Camera.Position.Y, u),
			Z: lerp(a.Camera.Position.Z, b.Camera.Position.Z, u),
		},
		Heading: lerp(a.Camera.Heading, b.Camera.Heading, u),
		Tilt:    lerp(a.Camera.Tilt, b.Camera.Tilt, u),
	}
	target := choreography.Viewpoint{Camera: &cam}
	if err := e.view.GoTo(target, false); err != nil {
		// navigation rejections are not retried; the next tick supersedes
		e.log.Warn("Host view rejected camera target", zap.Error(err))
	}
	return nil
}

// applyFlat handles the 2D path: rotation, scale and extent coordinates lerp
// with the eased progress, one-sided fields passing through unmodified. In
// fit-to-scale mode the fully interpolated viewpoint applies atomically;
// otherwise only target geometry plus rotation are set and the host fits the
// extent.
func (e *Engine) applyFlat(a, b *choreography.Viewpoint, u float64) error {
	geometry := lerpExtent(a.TargetGeometry, b.TargetGeometry, u)
	if geometry == nil {
		return ErrMissingGeometry
	}
	rotation := lerpOpt(a.Rotation, b.Rotation, u)

	target := choreography.Viewpoint{Rotation: rotation, TargetGeometry: geometry}
	if e.fitToScale {
		target.Scale = lerpOpt(a.Scale, b.Scale, u)
	}
	if err := e.view.GoTo(target, false); err != nil {
		e.log.Warn("Host view rejected viewpoint target", zap.Error(err))
	}
	return nil
}

func lerpExtent(a, b *choreography.Extent, u float64) *choreography.Extent {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		out := *b
		return &out
	case b == nil:
		out := *a
		return &out
	default:
		return &choreography.Extent{
			XMin: lerp(a.XMin, b.XMin, u),
			YMin: lerp(a.YMin, b.YMin, u),
			XMax: lerp(a.XMax, b.XMax, u),
			YMax: lerp(a.YMax, b.YMax, u),
		}
	}
}
