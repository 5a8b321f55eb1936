package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"storyscroll/internal/choreography"
	"storyscroll/internal/state"
)

// validateChoreography loads a choreography and reports per-slide structure.
// Structural warnings (unparseable instants, unknown units) are logged by
// the store; only a malformed document fails the command.
func validateChoreography(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	path := cmd.Args().Get(0)
	if path == "" {
		path = env.Cfg.Story.Choreography
	}
	if path == "" {
		return fmt.Errorf("no choreography given (argument or story.choreography in configuration)")
	}

	store, err := choreography.Load(path, env.Log)
	if err != nil {
		return err
	}

	for i := 0; i < store.Len(); i++ {
		s, _ := store.Slide(i)
		env.Log.Info("Slide",
			zap.Int("index", i),
			zap.Bool("viewpoint", s.Viewpoint != nil),
			zap.Bool("camera", s.Viewpoint != nil && s.Viewpoint.Camera != nil),
			zap.Bool("timeSlider", s.TimeSlider != nil),
			zap.Bool("environment", s.Environment != nil),
			zap.Int("layers", len(s.LayerVisibility)),
			zap.Bool("trackRenderer", s.TrackRenderer != nil))
	}
	env.Log.Info("Choreography valid", zap.String("path", path), zap.Int("slides", store.Len()))
	return nil
}
