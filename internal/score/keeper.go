package score

import (
	"log/slog"

	"simon-says/internal/simon"
)

// Keeper owns the in-memory high scores for one player and flushes them to a
// Store after every game. Persistence problems are logged and never surface
// to the caller; the game keeps working from memory.
type Keeper struct {
	scores *HighScores
	store  Store
	clock  Clock
	logger *slog.Logger
}

// NewKeeper loads the player's history from store. A load failure is logged
// and the keeper starts with empty ledgers.
func NewKeeper(store Store, clock Clock, logger *slog.Logger) *Keeper {
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	k := &Keeper{store: store, clock: clock, logger: logger}

	scores, err := store.Load()
	if err != nil {
		logger.Warn("high scores: load failed, starting empty", "error", err)
		scores = NewHighScores()
	}
	k.scores = scores
	return k
}

// AddScore records a finished game dated today. Stores that implement
// Appender receive just the new entry; others get the whole document.
func (k *Keeper) AddScore(d simon.Difficulty, score int) {
	l := k.scores.Ledger(d)
	l.Add(score, k.clock.Now())

	var err error
	if a, ok := k.store.(Appender); ok {
		err = a.Append(d, l.entries[len(l.entries)-1])
	} else {
		err = k.store.Save(k.scores)
	}
	if err != nil {
		k.logger.Warn("high scores: save failed", "difficulty", d.Key(), "score", score, "error", err)
		return
	}
	k.logger.Info("high score recorded", "difficulty", d.Key(), "score", score)
}

// Best returns today's, this week's and the all-time best for d.
func (k *Keeper) Best(d simon.Difficulty) Bests {
	return BestsOf(k.scores.Ledger(d), k.clock.Now())
}

// BestToday returns the best score for d dated today.
func (k *Keeper) BestToday(d simon.Difficulty) int {
	return k.scores.Ledger(d).BestToday(k.clock.Now())
}

// BestThisWeek returns the best score for d since the start of this week.
func (k *Keeper) BestThisWeek(d simon.Difficulty) int {
	return k.scores.Ledger(d).BestThisWeek(k.clock.Now())
}

// BestAllTime returns the best score ever recorded for d.
func (k *Keeper) BestAllTime(d simon.Difficulty) int {
	return k.scores.Ledger(d).BestAllTime()
}
