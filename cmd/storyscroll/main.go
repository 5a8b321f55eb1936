package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"storyscroll/internal/config"
	"storyscroll/internal/state"
)

const appName = "storyscroll"

// initializeAppContext prepares the environment after the command line has
// been parsed but before any command runs.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)
	if env.Cfg, err = config.Load(cmd.String("config")); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.Log.Debug("Program started", zap.Strings("args", os.Args))
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()))
		err = multierr.Append(err, env.Log.Sync())
	}
	return
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "scroll-synchronized story map choreography player",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "verbose logging"},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Runs a full tracking and playback session over a simulated story document",
				Action:    runStory,
				ArgsUsage: "CHOREOGRAPHY",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "camera", Usage: "simulate a host view with a 3D camera"},
					&cli.BoolFlag{Name: "stats", Usage: "print a session report on exit"},
				},
			},
			{
				Name:      "validate",
				Usage:     "Loads a choreography and reports its structure",
				Action:    validateChoreography,
				ArgsUsage: "CHOREOGRAPHY",
			},
			{
				Name:   "dumpconfig",
				Usage:  "Dumps either default or actual configuration (YAML)",
				Action: outputConfiguration,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default configuration"},
				},
			},
			{
				Name:      "share",
				Usage:     "Produces a QR code image for a story URL pinned to a slide",
				Action:    shareStory,
				ArgsUsage: "OUTPUT.png",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "story `URL` (defaults to story.url from configuration)"},
					&cli.IntFlag{Name: "slide", Usage: "slide `INDEX` encoded in the location fragment"},
					&cli.IntFlag{Name: "size", Value: 512, Usage: "image size in pixels"},
				},
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	cfg := env.Cfg
	if cmd.Bool("default") {
		cfg = config.Default()
	}
	data, err := config.Dump(cfg)
	if err != nil {
		return fmt.Errorf("unable to serialize configuration: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
