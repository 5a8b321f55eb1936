package tracker

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storyscroll/internal/bus"
	"storyscroll/internal/dom"
	"storyscroll/internal/geometry"
)

// Options selects the document hooks a session observes.
type Options struct {
	// ContainerSelector locates the narrative container whose class
	// attribute signals docking.
	ContainerSelector string
	// PanelSelector locates the narrative panels.
	PanelSelector string
	// FrameSelector locates the embedded map frame.
	FrameSelector string
	// LocationAttribute is the frame attribute carrying the slide fragment.
	LocationAttribute string
	// DockMarker is the class marking the docked state.
	DockMarker string
	// PollInterval bounds the element discovery poll.
	PollInterval time.Duration
	// Embedded reports whether the story runs inside an embedding host.
	Embedded bool
}

// DefaultOptions are the conventional story document hooks.
func DefaultOptions() Options {
	return Options{
		ContainerSelector: ".story-panel-container",
		PanelSelector:     ".story-panel",
		FrameSelector:     "iframe.story-map",
		LocationAttribute: "src",
		DockMarker:        "docked",
		PollInterval:      100 * time.Millisecond,
		Embedded:          true,
	}
}

// Stats is the session's publish accounting.
type Stats struct {
	ScrollEvents uint64
	Published    uint64
	Corrections  uint64
}

// Session owns all mutable tracking state: the dock machine, the scroll
// state and the slide index resolver. Every event handler runs on the single
// session goroutine, so the fields need no locking; ordering between the
// fallback index correction and progress computation is fixed by handleScroll.
type Session struct {
	id   string
	opts Options
	doc  dom.Document
	ch   *bus.Channel
	log  *zap.Logger

	dock     *DockTracker
	scroll   ScrollState
	resolver SlideIndexResolver
	panels   []geometry.Panel
	frame    dom.Element

	stats Stats
}

// NewSession wires a session over a document and a message channel.
func NewSession(doc dom.Document, ch *bus.Channel, opts Options, log *zap.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:   id,
		opts: opts,
		doc:  doc,
		ch:   ch,
		log:  log.With(zap.String("session", id)),
		dock: NewDockTracker(opts.DockMarker, log),
	}
}

// ID returns the session identity used in logs.
func (s *Session) ID() string { return s.id }

// Stats returns the session's accounting. Safe to read after Run returns.
func (s *Session) Stats() Stats { return s.stats }

// Run discovers the observed elements, announces the session and processes
// events until ctx is cancelled. All suspension points are channel receives;
// scroll events are handled in occurrence order.
func (s *Session) Run(ctx context.Context) error {
	container, err := dom.WaitFor(ctx, s.doc, s.opts.ContainerSelector, s.opts.PollInterval)
	if err != nil {
		return err
	}
	s.frame, err = dom.WaitFor(ctx, s.doc, s.opts.FrameSelector, s.opts.PollInterval)
	if err != nil {
		return err
	}
	s.panels = s.doc.Panels(s.opts.PanelSelector)
	s.log.Debug("Tracking session ready",
		zap.Int("panels", len(s.panels)),
		zap.Bool("embedded", s.opts.Embedded))

	// seed scroll state and the initial slide index before observing
	s.scroll.LastY = s.doc.ScrollY()
	if loc, ok := s.frame.Attribute(s.opts.LocationAttribute); ok {
		s.resolver.Observe(loc)
	}

	classes := container.ObserveAttribute(ctx, "class")
	locations := s.frame.ObserveAttribute(ctx, s.opts.LocationAttribute)
	scrolls := s.doc.ScrollEvents(ctx)

	// announce only once the observers are in place: anything the session
	// publishes after the init is backed by live tracking
	s.ch.Publish(bus.Init{IsEmbedded: s.opts.Embedded})

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("Tracking session ended",
				zap.Uint64("scrollEvents", s.stats.ScrollEvents),
				zap.Uint64("published", s.stats.Published))
			return nil
		case m, ok := <-classes:
			if !ok {
				return nil
			}
			s.dock.HandleClassChange(m.Value, s.scroll)
		case m, ok := <-locations:
			if !ok {
				return nil
			}
			s.resolver.Observe(m.Value)
		case y, ok := <-scrolls:
			if !ok {
				return nil
			}
			s.handleScroll(y)
		}
	}
}

// handleScroll runs once per scroll event and must stay cheap: scroll events
// arrive at unbounded frequency.
func (s *Session) handleScroll(y float64) {
	s.stats.ScrollEvents++
	s.scroll.Update(y)

	if !s.dock.Docked() {
		return
	}
	anchor, ok := s.dock.Anchor()
	if !ok {
		return
	}

	// fallback index check: re-read the location in case a mutation
	// notification was missed; the freshly computed value always wins
	slide := s.resolver.Index()
	if loc, ok := s.frame.Attribute(s.opts.LocationAttribute); ok {
		var changed bool
		slide, changed = s.resolver.Resolve(loc)
		if changed {
			s.stats.Corrections++
			s.log.Debug("Slide index corrected by fallback check", zap.Int("slide", slide))
		}
	}
	if slide >= len(s.panels) {
		return
	}

	progress := geometry.Progress(s.panels, slide, anchor, y)
	if math.IsNaN(progress) || math.IsInf(progress, 0) {
		progress = 0
	}

	s.ch.Publish(bus.NewProgress(slide, progress))
	s.stats.Published++
}
