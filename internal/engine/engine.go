// Package engine wires the tracking session and the playback controller
// around the shared message channel and runs them to completion.
package engine

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storyscroll/internal/bus"
	"storyscroll/internal/controller"
	"storyscroll/internal/system"
	"storyscroll/internal/tracker"
)

// Project owns one complete scroll-synchronization run: the producer side
// (tracking session), the consumer side (controller) and the channel between
// them.
type Project struct {
	Session    *tracker.Session
	Controller *controller.Controller
	Channel    *bus.Channel
	Log        *zap.Logger
	ShowStats  bool
}

// Run starts both halves and blocks until ctx is cancelled or either side
// fails. The channel closes when the session ends so the controller drains
// its remaining messages and exits.
func (p *Project) Run(ctx context.Context, initialSlide int) error {
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer p.Channel.Close()
		return p.Session.Run(ctx)
	})
	g.Go(func() error {
		return p.Controller.Run(ctx, initialSlide)
	})

	err := g.Wait()

	if p.ShowStats {
		published, dropped := p.Channel.Stats()
		stats := p.Session.Stats()
		p.Log.Info("Session report",
			zap.Duration("elapsed", time.Since(start)),
			zap.Uint64("scrollEvents", stats.ScrollEvents),
			zap.Uint64("published", published),
			zap.Uint64("dropped", dropped),
			zap.Uint64("indexCorrections", stats.Corrections))
		if snap, serr := system.Capture(); serr == nil {
			snap.Log(p.Log)
		} else {
			err = multierr.Append(err, serr)
		}
	}
	return err
}
