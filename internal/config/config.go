package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/galaxy4x/engine/internal/updater"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Clock   ClockConfig   `toml:"clock"`
	Status  StatusConfig  `toml:"status"`
	Logging LoggingConfig `toml:"logging"`
}

type GameConfig struct {
	Name          string       `toml:"name"`
	Galaxy        string       `toml:"galaxy"`     // YAML galaxy definition
	Blueprints    string       `toml:"blueprints"` // YAML ship blueprint table
	ScriptsDir    string       `toml:"scripts_dir"`
	StartupBuilds []BuildOrder `toml:"startup_builds"`
}

// BuildOrder queues a blueprint at a body when the game starts.
type BuildOrder struct {
	Blueprint string `toml:"blueprint"`
	System    int    `toml:"system"`
	Body      int    `toml:"body"`
}

type ClockConfig struct {
	Speed       int    `toml:"speed"`   // speed tier 1..5
	PaceMS      int    `toml:"pace_ms"` // overrides speed when >= 0
	Granularity string `toml:"granularity"`
	StartPaused bool   `toml:"start_paused"`
}

type StatusConfig struct {
	PulseMS int `toml:"pulse_ms"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// Pace resolves the tick pace in milliseconds.
func (c *ClockConfig) Pace() int {
	if c.PaceMS >= 0 {
		return c.PaceMS
	}
	pace, err := updater.PaceForSpeed(c.Speed)
	if err != nil {
		return updater.DefaultPace
	}
	return pace
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := updater.ParseGranularity(c.Clock.Granularity); err != nil {
		errs = append(errs, fmt.Errorf("clock.granularity: %w (want one of %s)",
			err, strings.Join(updater.GranularityNames(), ", ")))
	}
	if c.Clock.PaceMS < 0 {
		if _, err := updater.PaceForSpeed(c.Clock.Speed); err != nil {
			errs = append(errs, fmt.Errorf("clock.speed: %w", err))
		}
	}
	if c.Status.PulseMS <= 0 {
		errs = append(errs, fmt.Errorf("status.pulse_ms: must be positive, got %d", c.Status.PulseMS))
	}
	for i, b := range c.Game.StartupBuilds {
		if b.Blueprint == "" {
			errs = append(errs, fmt.Errorf("game.startup_builds[%d]: missing blueprint", i))
		}
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Name:       "galaxy4x",
			Galaxy:     "data/yaml/galaxy_list.yaml",
			Blueprints: "data/yaml/ship_list.yaml",
			ScriptsDir: "scripts",
		},
		Clock: ClockConfig{
			Speed:       2,
			PaceMS:      -1,
			Granularity: "days",
		},
		Status: StatusConfig{
			PulseMS: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
