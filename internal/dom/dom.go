// Package dom abstracts the story document: an opaque, mutation-observable
// element tree plus a scroll position. The real document lives in the host;
// this package only defines the seam the tracker observes through, a
// cancellable discovery poller and an in-memory fake.
package dom

import (
	"context"

	"storyscroll/internal/geometry"
)

// AttributeChange is one mutation notification. Notifications are batched by
// the observer machinery: a single change may coalesce several underlying
// updates and the same value may be delivered more than once, so handlers
// must be idempotent.
type AttributeChange struct {
	Name  string
	Value string
}

// Element is a single observable node.
type Element interface {
	// Attribute reads the current attribute value.
	Attribute(name string) (string, bool)
	// ObserveAttribute subscribes to mutations of one attribute. The
	// subscription ends when ctx is done; the returned channel is then
	// closed.
	ObserveAttribute(ctx context.Context, name string) <-chan AttributeChange
}

// Document is the story document surface consumed by the tracker.
type Document interface {
	// Query finds an element by selector.
	Query(selector string) (Element, bool)
	// Panels snapshots the layout metrics of the narrative panels.
	Panels(selector string) []geometry.Panel
	// ScrollY reads the current vertical scroll offset.
	ScrollY() float64
	// ScrollEvents subscribes to scroll offsets in occurrence order. The
	// subscription ends when ctx is done.
	ScrollEvents(ctx context.Context) <-chan float64
}
