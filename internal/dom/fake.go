package dom

import (
	"context"
	"sync"

	"storyscroll/internal/geometry"
)

// FakeElement is an in-memory Element for tests and the simulated session.
type FakeElement struct {
	mu       sync.Mutex
	attrs    map[string]string
	watchers []*attrWatcher
}

type attrWatcher struct {
	ctx  context.Context
	name string
	ch   chan AttributeChange
}

// NewFakeElement creates an element with initial attributes.
func NewFakeElement(attrs map[string]string) *FakeElement {
	e := &FakeElement{attrs: make(map[string]string)}
	for k, v := range attrs {
		e.attrs[k] = v
	}
	return e
}

func (e *FakeElement) Attribute(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.attrs[name]
	return v, ok
}

func (e *FakeElement) ObserveAttribute(ctx context.Context, name string) <-chan AttributeChange {
	w := &attrWatcher{ctx: ctx, name: name, ch: make(chan AttributeChange, 32)}
	e.mu.Lock()
	e.watchers = append(e.watchers, w)
	e.mu.Unlock()
	go func() {
		<-ctx.Done()
		e.mu.Lock()
		for i, cand := range e.watchers {
			if cand == w {
				e.watchers = append(e.watchers[:i], e.watchers[i+1:]...)
				break
			}
		}
		e.mu.Unlock()
		close(w.ch)
	}()
	return w.ch
}

// SetAttribute writes an attribute and notifies observers. Like the real
// mutation machinery, delivery is asynchronous and may coalesce: a slow
// observer silently misses intermediate values.
func (e *FakeElement) SetAttribute(name, value string) {
	e.mu.Lock()
	e.attrs[name] = value
	watchers := make([]*attrWatcher, len(e.watchers))
	copy(watchers, e.watchers)
	e.mu.Unlock()
	for _, w := range watchers {
		if w.name != name {
			continue
		}
		select {
		case w.ch <- AttributeChange{Name: name, Value: value}:
		default:
		}
	}
}

// SetAttributeSilently writes an attribute without notifying observers,
// simulating a missed mutation notification.
func (e *FakeElement) SetAttributeSilently(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
}

// FakeDocument is an in-memory Document.
type FakeDocument struct {
	mu       sync.Mutex
	elements map[string]*FakeElement
	panels   []geometry.Panel
	scrollY  float64
	scrolls  []*scrollWatcher
}

type scrollWatcher struct {
	ch chan float64
}

// NewFakeDocument creates an empty document.
func NewFakeDocument() *FakeDocument {
	return &FakeDocument{elements: make(map[string]*FakeElement)}
}

// AddElement registers an element under a selector.
func (d *FakeDocument) AddElement(selector string, el *FakeElement) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[selector] = el
}

// RemoveElement unregisters a selector, simulating DOM removal.
func (d *FakeDocument) RemoveElement(selector string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, selector)
}

// SetPanels installs the layout snapshot returned by Panels.
func (d *FakeDocument) SetPanels(panels []geometry.Panel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.panels = panels
}

func (d *FakeDocument) Query(selector string) (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[selector]
	return el, ok
}

func (d *FakeDocument) Panels(string) []geometry.Panel {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]geometry.Panel, len(d.panels))
	copy(out, d.panels)
	return out
}

func (d *FakeDocument) ScrollY() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollY
}

func (d *FakeDocument) ScrollEvents(ctx context.Context) <-chan float64 {
	w := &scrollWatcher{ch: make(chan float64, 64)}
	d.mu.Lock()
	d.scrolls = append(d.scrolls, w)
	d.mu.Unlock()
	go func() {
		<-ctx.Done()
		d.mu.Lock()
		for i, cand := range d.scrolls {
			if cand == w {
				d.scrolls = append(d.scrolls[:i], d.scrolls[i+1:]...)
				break
			}
		}
		d.mu.Unlock()
		close(w.ch)
	}()
	return w.ch
}

// Scroll moves the document to y and delivers one scroll event.
func (d *FakeDocument) Scroll(y float64) {
	d.mu.Lock()
	d.scrollY = y
	watchers := make([]*scrollWatcher, len(d.scrolls))
	copy(watchers, d.scrolls)
	d.mu.Unlock()
	for _, w := range watchers {
		select {
		case w.ch <- y:
		default:
		}
	}
}
