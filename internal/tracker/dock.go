package tracker

import (
	"strings"

	"go.uber.org/zap"
)

// DockPhase names the explicit states of the dock machine.
type DockPhase int

const (
	Undocked DockPhase = iota
	Docked
)

func (p DockPhase) String() string {
	if p == Docked {
		return "docked"
	}
	return "undocked"
}

// DockTracker watches the narrative container's class attribute and records
// the scroll offset at the moment the narrative pins to the viewport. That
// offset anchors slide 0's scroll origin.
//
// The anchor is recorded only on a down-scroll entry into the docked state.
// Re-entering from above keeps the previous anchor so users scrubbing back
// and forth near the boundary do not see discontinuities. On undock the
// anchor value is retained internally but reported as invalid.
type DockTracker struct {
	phase     DockPhase
	anchor    float64
	hasAnchor bool
	marker    string
	log       *zap.Logger
}

// NewDockTracker creates a tracker watching for the given class marker.
func NewDockTracker(marker string, log *zap.Logger) *DockTracker {
	return &DockTracker{marker: marker, log: log}
}

// HandleClassChange processes one observed class attribute value. Mutation
// notifications are batched and may repeat, so the handler transitions only
// on actual phase changes and is otherwise a no-op.
func (d *DockTracker) HandleClassChange(classes string, scroll ScrollState) {
	docked := hasClass(classes, d.marker)
	switch {
	case docked && d.phase == Undocked:
		d.phase = Docked
		if scroll.Direction == Down {
			d.anchor = scroll.LastY
			d.hasAnchor = true
			d.log.Debug("Narrative docked", zap.Float64("anchor", d.anchor))
		} else {
			d.log.Debug("Narrative docked from above, keeping previous anchor",
				zap.Bool("haveAnchor", d.hasAnchor))
		}
	case !docked && d.phase == Docked:
		d.phase = Undocked
		d.log.Debug("Narrative undocked")
	}
}

// Docked reports whether the narrative is currently pinned.
func (d *DockTracker) Docked() bool { return d.phase == Docked }

// Anchor returns the scroll offset recorded at dock time. It is only valid
// while docked and after a down-scroll entry has recorded it.
func (d *DockTracker) Anchor() (float64, bool) {
	if d.phase != Docked || !d.hasAnchor {
		return 0, false
	}
	return d.anchor, true
}

func hasClass(classes, marker string) bool {
	for _, c := range strings.Fields(classes) {
		if c == marker {
			return true
		}
	}
	return false
}
