package main

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"simon-says/internal/config"
	"simon-says/internal/game"
	"simon-says/internal/prefs"
	"simon-says/internal/score"
	"simon-says/internal/sound"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("error: %v", err)
	}
	if err := run(cfg, newTerminalScreen); err != nil {
		config.Exitf("error: %v", err)
	}
}

func newTerminalScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// run plays until the player quits. Every resource it opens is closed before
// it returns, on success or error.
func run(cfg config.Config, newScreen func() (tcell.Screen, error)) error {
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	logger, closer, err := config.OpenLogFile(dir)
	if err != nil {
		return err
	}
	defer closer.Close()

	prefsPath := filepath.Join(dir, prefs.FileName)
	p, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("preferences ignored", "error", err)
	}

	keeper := score.NewKeeper(score.NewFileStore(filepath.Join(dir, score.FileName)), score.SystemClock, logger)

	var player sound.Player = sound.Nop{}
	if cfg.Sound {
		pool, err := sound.Open(sound.Options{
			Voices:   cfg.SoundVoices,
			Duration: cfg.Timing.StepOn,
			Volume:   cfg.Volume,
		})
		if err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			player = pool
		}
	}
	defer player.Close()

	screen, err := newScreen()
	if err != nil {
		logger.Error("terminal setup failed", "error", err)
		return fmt.Errorf("screen: %w", err)
	}

	logger.Info("session started", "data_dir", dir, "difficulty", p.Difficulty.Key())
	game.New(screen, game.Options{
		Timing:     cfg.Timing,
		Scores:     keeper,
		Sound:      player,
		Logger:     logger,
		Difficulty: p.Difficulty,
		SoundOn:    p.Sound,
		RunLogPath: filepath.Join(dir, game.RunLogFileName),
		OnPrefs: func(np prefs.Prefs) {
			if err := prefs.Save(prefsPath, np); err != nil {
				logger.Warn("preferences not saved", "error", err)
			}
		},
	}).Run()
	logger.Info("session ended")
	return nil
}
