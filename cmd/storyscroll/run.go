package main

import (
	"context"
	"fmt"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"storyscroll/internal/applier"
	"storyscroll/internal/bus"
	"storyscroll/internal/choreography"
	"storyscroll/internal/config"
	"storyscroll/internal/controller"
	"storyscroll/internal/dom"
	"storyscroll/internal/engine"
	"storyscroll/internal/geometry"
	"storyscroll/internal/interp"
	"storyscroll/internal/mapview"
	"storyscroll/internal/state"
	"storyscroll/internal/tracker"
)

// runStory loads a choreography and plays it against a simulated story
// document and a fake host view: the document scrolls top to bottom through
// every slide while the tracker publishes progress and the controller drives
// the view.
func runStory(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	cfg := env.Cfg

	path := cmd.Args().Get(0)
	if path == "" {
		path = cfg.Story.Choreography
	}
	if path == "" {
		return fmt.Errorf("no choreography given (argument or story.choreography in configuration)")
	}

	store, err := choreography.Load(path, env.Log)
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		return fmt.Errorf("choreography '%s' contains no slides", path)
	}
	env.Log.Info("Choreography loaded", zap.String("path", path), zap.Int("slides", store.Len()))

	doc, container, frame := simulatedDocument(cfg.Tracking, store.Len())
	view := mapview.NewFake(cmd.Bool("camera"))
	ch := bus.New(env.Log)

	opts := tracker.Options{
		ContainerSelector: cfg.Tracking.ContainerSelector,
		PanelSelector:     cfg.Tracking.PanelSelector,
		FrameSelector:     cfg.Tracking.FrameSelector,
		LocationAttribute: cfg.Tracking.LocationAttribute,
		DockMarker:        cfg.Tracking.DockMarker,
		PollInterval:      cfg.Tracking.PollInterval,
		Embedded:          cfg.Tracking.Embedded,
	}
	session := tracker.NewSession(doc, ch, opts, env.Log)
	eng := interp.New(view, cfg.Playback.FitToScale, env.Log)
	app := applier.New(view, cfg.Tracking.Embedded, cfg.Playback.EmbeddedSkip, env.Log)
	ctrl := controller.New(store, eng, app, ch, cfg.Playback.AnimateTransitions, env.Log)

	project := &engine.Project{
		Session:    session,
		Controller: ctrl,
		Channel:    ch,
		Log:        env.Log,
		ShowStats:  cmd.Bool("stats"),
	}

	runCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		driveScroll(runCtx, doc, container, frame, opts, store.Len())
	}()

	if err := project.Run(runCtx, 0); err != nil && ctx.Err() == nil {
		return err
	}
	env.Log.Info("Session complete", zap.Int("finalSlide", ctrl.Slide()))
	return nil
}

// simulatedDocument builds a story document with one panel per slide, an
// undocked container and an embedded frame starting at slide 0.
func simulatedDocument(cfg config.TrackingConfig, slides int) (*dom.FakeDocument, *dom.FakeElement, *dom.FakeElement) {
	doc := dom.NewFakeDocument()

	panels := make([]geometry.Panel, slides)
	for i := range panels {
		panels[i] = geometry.Panel{OffsetHeight: 600, MarginTop: 40, MarginBottom: 40, PaddingBottom: 30}
	}
	doc.SetPanels(panels)

	container := dom.NewFakeElement(map[string]string{"class": "story-panel-container"})
	doc.AddElement(cfg.ContainerSelector, container)

	frame := dom.NewFakeElement(map[string]string{cfg.LocationAttribute: "https://story.example/embed#0"})
	doc.AddElement(cfg.FrameSelector, frame)

	return doc, container, frame
}

// driveScroll sweeps the document from top to bottom: the container docks at
// the dock offset and the frame's location fragment follows the slide whose
// scroll window contains the current offset, mimicking the narrative's own
// behavior.
func driveScroll(ctx context.Context, doc *dom.FakeDocument, container, frame *dom.FakeElement, opts tracker.Options, slides int) {
	const dockAt = 400.0
	panels := doc.Panels(opts.PanelSelector)

	total := dockAt
	for i := range panels {
		total += geometry.PanelHeight(panels, i)
	}

	// give the session a moment to discover elements and subscribe
	select {
	case <-ctx.Done():
		return
	case <-time.After(50 * time.Millisecond):
	}

	for y := 0.0; y <= total; y += 25 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Millisecond):
		}

		doc.Scroll(y)
		if y >= dockAt {
			container.SetAttribute("class", "story-panel-container "+opts.DockMarker)
			slide := slideAt(panels, dockAt, y, slides)
			frame.SetAttribute(opts.LocationAttribute, fmt.Sprintf("https://story.example/embed#%d", slide))
		}
	}

	// drain: let the controller consume the tail of the stream
	select {
	case <-ctx.Done():
	case <-time.After(100 * time.Millisecond):
	}
}

func slideAt(panels []geometry.Panel, anchor, y float64, slides int) int {
	for i := 0; i < slides; i++ {
		b := geometry.ScrollBounds(panels, i, anchor)
		if y < b.End {
			return i
		}
	}
	return slides - 1
}
