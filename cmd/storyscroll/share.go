package main

import (
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"storyscroll/internal/state"
)

// shareStory writes a QR code image for the story URL with the slide encoded
// in the location fragment, the same addressing the tracker parses.
func shareStory(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	output := cmd.Args().Get(0)
	if output == "" {
		return fmt.Errorf("no output image given")
	}

	url := cmd.String("url")
	if url == "" {
		url = env.Cfg.Story.URL
	}
	if url == "" {
		return fmt.Errorf("no story URL given (flag or story.url in configuration)")
	}

	target := fmt.Sprintf("%s#%d", url, cmd.Int("slide"))
	size := int(cmd.Int("size"))
	if err := qrcode.WriteFile(target, qrcode.Medium, size, output); err != nil {
		return fmt.Errorf("unable to write QR code: %w", err)
	}

	env.Log.Info("Share code written", zap.String("target", target), zap.String("output", output))
	return nil
}
