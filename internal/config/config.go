// Package config holds program configuration: YAML on disk, defaults in
// code, and preparation of the program logger.
package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

type (
	// StoryConfig addresses the story and its choreography.
	StoryConfig struct {
		// Choreography is a path or http(s) URL to the JSON slide array.
		Choreography string `yaml:"choreography"`
		// URL is the public story address used by the share command.
		URL string `yaml:"url"`
	}

	// TrackingConfig selects the document hooks observed by the tracker.
	TrackingConfig struct {
		ContainerSelector string        `yaml:"container_selector"`
		PanelSelector     string        `yaml:"panel_selector"`
		FrameSelector     string        `yaml:"frame_selector"`
		LocationAttribute string        `yaml:"location_attribute"`
		DockMarker        string        `yaml:"dock_marker"`
		PollInterval      time.Duration `yaml:"poll_interval"`
		Embedded          bool          `yaml:"embedded"`
	}

	// PlaybackConfig tunes the consuming side.
	PlaybackConfig struct {
		// FitToScale applies fully interpolated 2D viewpoints atomically
		// instead of letting the host fit the target extent.
		FitToScale bool `yaml:"fit_to_scale"`
		// AnimateTransitions animates discrete slide transitions.
		AnimateTransitions bool `yaml:"animate_transitions"`
		// EmbeddedSkip lists slide properties not applied discretely while
		// embedded, where continuous updates already cover them.
		EmbeddedSkip []string `yaml:"embedded_skip"`
	}

	// LoggingConfig selects console verbosity.
	LoggingConfig struct {
		Level string `yaml:"level"`
	}

	Config struct {
		Version  int            `yaml:"version"`
		Story    StoryConfig    `yaml:"story"`
		Tracking TrackingConfig `yaml:"tracking"`
		Playback PlaybackConfig `yaml:"playback"`
		Logging  LoggingConfig  `yaml:"logging"`
	}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Tracking: TrackingConfig{
			ContainerSelector: ".story-panel-container",
			PanelSelector:     ".story-panel",
			FrameSelector:     "iframe.story-map",
			LocationAttribute: "src",
			DockMarker:        "docked",
			PollInterval:      100 * time.Millisecond,
			Embedded:          true,
		},
		Playback: PlaybackConfig{
			AnimateTransitions: true,
			EmbeddedSkip:       []string{"viewpoint"},
		},
		Logging: LoggingConfig{Level: "normal"},
	}
}

// Load returns defaults overlaid with the YAML file at path. An empty path
// returns plain defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration '%s': %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("bad configuration '%s': %w", path, err)
	}
	return cfg, nil
}

// Dump serializes the active configuration.
func Dump(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported configuration version %d", c.Version)
	}
	if c.Tracking.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.Tracking.PollInterval)
	}
	switch c.Logging.Level {
	case "none", "normal", "debug":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	return nil
}
