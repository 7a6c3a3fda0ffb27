package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunLogFileName is the game history written next to the high scores.
const RunLogFileName = "runs.jsonl"

// RunLog describes one finished game.
type RunLog struct {
	Player     string    `json:"player,omitempty"`
	Difficulty string    `json:"difficulty"`
	Score      int       `json:"score"`
	Round      int       `json:"round"`
	Missed     string    `json:"missed"`
	Started    time.Time `json:"started"`
	Ended      time.Time `json:"ended"`
}

// saveRunLog appends log as a single JSON line to path.
func saveRunLog(path string, log RunLog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// recordRun appends the game that just ended. Failures are logged only.
func (g *Game) recordRun(started time.Time) {
	if g.runLogPath == "" {
		return
	}
	err := saveRunLog(g.runLogPath, RunLog{
		Player:     g.player,
		Difficulty: g.difficulty.Key(),
		Score:      g.machine.Score(),
		Round:      g.machine.Round(),
		Missed:     g.expected.String(),
		Started:    started,
		Ended:      time.Now(),
	})
	if err != nil {
		g.logger.Warn("run log not written", "error", err)
	}
}
