// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// AppName names the per-user data directory.
const AppName = "simon-says"

// Timing holds the pacing of sequence playback. Only the presentation driver
// reads it; the game rules have no notion of time.
type Timing struct {
	StepOn        time.Duration `env:"STEP_ON" envDefault:"550ms"`
	StepGap       time.Duration `env:"STEP_GAP" envDefault:"250ms"`
	RoundDelay    time.Duration `env:"ROUND_DELAY" envDefault:"900ms"`
	PressFlash    time.Duration `env:"PRESS_FLASH" envDefault:"180ms"`
	GameOverDelay time.Duration `env:"GAME_OVER_DELAY" envDefault:"1200ms"`
}

// Config is the full runtime configuration.
type Config struct {
	// DataDir overrides the XDG data directory.
	DataDir string `env:"SIMON_DATA_DIR"`

	Sound       bool    `env:"SIMON_SOUND" envDefault:"true"`
	Volume      float64 `env:"SIMON_VOLUME" envDefault:"-1"`
	SoundVoices int     `env:"SIMON_SOUND_VOICES" envDefault:"4"`

	SSHPort    int    `env:"SIMON_SSH_PORT" envDefault:"2222"`
	SSHHostKey string `env:"SIMON_SSH_HOST_KEY" envDefault:"server_host_key"`
	HTTPAddr   string `env:"SIMON_HTTP_ADDR" envDefault:":8080"`
	DBPath     string `env:"SIMON_DB_PATH" envDefault:"simon.db"`

	Timing Timing `envPrefix:"SIMON_TIMING_"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns a Config populated from the environment and defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveDataDir returns cfg.DataDir when set, otherwise DataDir().
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return DataDir()
}

// DataDir returns the directory for scores, preferences and logs.
// Follows the XDG Base Directory spec: $XDG_DATA_HOME/simon-says,
// defaulting to ~/.local/share/simon-says.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName), nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
