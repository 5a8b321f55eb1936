// Package controller is the receiving half of the producer/consumer pair: it
// consumes progress messages from the channel, resolves the keyframe pair
// from the choreography and drives the interpolation engine, falling back to
// discrete slide application on index transitions and hash navigation.
package controller

import (
	"context"

	"go.uber.org/zap"

	"storyscroll/internal/applier"
	"storyscroll/internal/bus"
	"storyscroll/internal/choreography"
	"storyscroll/internal/interp"
	"storyscroll/internal/tracker"
)

// Controller routes messages to the engine and applier. All state changes
// happen on the Run goroutine; the latest received message is the only
// current one (last-write-wins).
type Controller struct {
	store   *choreography.Store
	engine  *interp.Engine
	applier *applier.Applier
	ch      *bus.Channel
	log     *zap.Logger

	slide    int
	embedded bool
	animate  bool
}

// New creates a controller. The slide list is read-only after load; animate
// selects whether discrete slide transitions are animated by the host.
func New(store *choreography.Store, engine *interp.Engine, app *applier.Applier, ch *bus.Channel, animate bool, log *zap.Logger) *Controller {
	return &Controller{
		store:   store,
		engine:  engine,
		applier: app,
		ch:      ch,
		log:     log,
		slide:   -1,
		animate: animate,
	}
}

// Slide returns the last applied slide index, -1 before first application.
func (c *Controller) Slide() int { return c.slide }

// Run applies the initial slide and then processes messages until ctx is
// cancelled or the channel closes.
func (c *Controller) Run(ctx context.Context, initialSlide int) error {
	c.applyDiscrete(initialSlide, false)

	for {
		select {
		case <-ctx.Done():
			return nil
		case env, ok := <-c.ch.Receive():
			if !ok {
				return nil
			}
			c.Handle(env)
		}
	}
}

// Handle processes one envelope. Foreign sources are ignored outright.
func (c *Controller) Handle(env bus.Envelope) {
	msg, err := bus.Decode(env)
	if err != nil {
		if err != bus.ErrForeignSource {
			c.log.Warn("Discarding malformed envelope", zap.Error(err))
		}
		return
	}

	switch m := msg.(type) {
	case bus.Init:
		c.embedded = m.IsEmbedded
		c.log.Debug("Tracking session announced", zap.Bool("embedded", m.IsEmbedded))
	case bus.Progress:
		c.handleProgress(m)
	}
}

// HandleHashNavigation applies the slide addressed by a location fragment.
// Used when the story is not embedded; fragment parsing follows the exact
// tracker rules so both sides agree on slide addressing.
func (c *Controller) HandleHashNavigation(location string) {
	if c.embedded {
		return
	}
	c.applyDiscrete(tracker.ParseFragment(location), c.animate)
}

func (c *Controller) handleProgress(m bus.Progress) {
	progress, err := m.Value()
	if err != nil {
		c.log.Warn("Discarding progress message", zap.Error(err))
		return
	}
	c.embedded = c.embedded || m.IsEmbedded

	if m.Slide != c.slide {
		c.applyDiscrete(m.Slide, c.animate)
	}

	cur, next, ok := c.store.Pair(m.Slide)
	if !ok {
		c.log.Debug("Progress for slide outside choreography", zap.Int("slide", m.Slide))
		return
	}
	c.engine.Apply(cur, next, progress)
}

func (c *Controller) applyDiscrete(slide int, animate bool) {
	s, ok := c.store.Slide(slide)
	if !ok {
		c.log.Debug("No choreography slide to apply", zap.Int("slide", slide))
		return
	}
	c.applier.Apply(s, animate)
	c.slide = slide
	c.log.Debug("Applied discrete slide state", zap.Int("slide", slide))
}
