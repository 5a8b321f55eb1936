package mapview

import (
	"encoding/json"
	"errors"
	"sync"

	"storyscroll/internal/choreography"
)

// ErrNavigationRejected is returned by the fake when navigation failure is
// being simulated.
var ErrNavigationRejected = errors.New("navigation rejected by host view")

// Fake is an in-memory View recording everything applied to it. It backs the
// package tests and the simulated session of the run command.
type Fake struct {
	mu sync.Mutex

	Camera3D  bool
	RejectNav bool

	GoToCalls   int
	LastTarget  *choreography.Viewpoint
	LastAnimate bool

	Extent      *TimeExtent
	TimeStopped bool

	Env    *choreography.Environment
	Layers map[string]bool
	Track  json.RawMessage
}

// NewFake returns a fake view; camera3D selects 3D or 2D capability.
func NewFake(camera3D bool) *Fake {
	return &Fake{Camera3D: camera3D}
}

func (f *Fake) GoTo(target choreography.Viewpoint, animate bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RejectNav {
		return ErrNavigationRejected
	}
	f.GoToCalls++
	f.LastTarget = &target
	f.LastAnimate = animate
	return nil
}

func (f *Fake) HasCamera() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Camera3D
}

func (f *Fake) SetTimeExtent(extent TimeExtent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Extent = &extent
	return nil
}

func (f *Fake) StopTime() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TimeStopped = true
}

func (f *Fake) SetEnvironment(env choreography.Environment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Env = &env
	return nil
}

func (f *Fake) SetLayerVisibility(vis map[string]bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Layers = vis
	return nil
}

func (f *Fake) SetTrackRenderer(def json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Track = def
	return nil
}

// Snapshot returns a copy of the recorded state for assertions.
func (f *Fake) Snapshot() Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Fake{
		Camera3D:    f.Camera3D,
		GoToCalls:   f.GoToCalls,
		LastTarget:  f.LastTarget,
		LastAnimate: f.LastAnimate,
		Extent:      f.Extent,
		TimeStopped: f.TimeStopped,
		Env:         f.Env,
		Layers:      f.Layers,
		Track:       f.Track,
	}
}
