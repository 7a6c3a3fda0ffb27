// Package score keeps dated high-score entries per difficulty and persists
// them as JSON (local play) or SQLite (the SSH server).
package score

import (
	"encoding/json"
	"time"

	"simon-says/internal/simon"
)

// DateLayout is the format of Entry.Date.
const DateLayout = "2006-01-02"

// Entry is one finished game.
type Entry struct {
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// Ledger is the append-only history of one difficulty.
type Ledger struct {
	entries []Entry
}

// Add appends a new entry dated with now's calendar day.
func (l *Ledger) Add(score int, now time.Time) {
	l.entries = append(l.entries, Entry{Score: score, Date: now.Format(DateLayout)})
}

// Len returns the number of recorded games.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the history, oldest first.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// BestAllTime returns the highest score ever recorded, or 0.
func (l *Ledger) BestAllTime() int {
	best := 0
	for _, e := range l.entries {
		if e.Score > best {
			best = e.Score
		}
	}
	return best
}

// BestToday returns the highest score dated with now's calendar day, or 0.
func (l *Ledger) BestToday(now time.Time) int {
	today := now.Format(DateLayout)
	best := 0
	for _, e := range l.entries {
		if e.Date == today && e.Score > best {
			best = e.Score
		}
	}
	return best
}

// BestThisWeek returns the highest score dated on or after WeekStart(now),
// or 0. Entries with an unparseable date are skipped.
func (l *Ledger) BestThisWeek(now time.Time) int {
	start := WeekStart(now)
	best := 0
	for _, e := range l.entries {
		day, err := time.ParseInLocation(DateLayout, e.Date, now.Location())
		if err != nil || day.Before(start) {
			continue
		}
		if e.Score > best {
			best = e.Score
		}
	}
	return best
}

// WeekStart returns midnight of the Sunday that begins now's week.
func WeekStart(now time.Time) time.Time {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -int(today.Weekday()))
}

// MarshalJSON encodes the ledger as a plain array; an empty ledger is [].
func (l Ledger) MarshalJSON() ([]byte, error) {
	if l.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.entries)
}

// UnmarshalJSON decodes a plain array of entries.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	l.entries = entries
	return nil
}

// HighScores holds one ledger per difficulty and is the unit of persistence.
type HighScores struct {
	Easy   Ledger `json:"easy"`
	Medium Ledger `json:"medium"`
	Hard   Ledger `json:"hard"`
}

// NewHighScores returns three empty ledgers.
func NewHighScores() *HighScores { return &HighScores{} }

// Ledger returns the history for d. Unknown tiers map to Medium.
func (h *HighScores) Ledger(d simon.Difficulty) *Ledger {
	switch d {
	case simon.Easy:
		return &h.Easy
	case simon.Hard:
		return &h.Hard
	}
	return &h.Medium
}

// Bests is the triple shown next to the board.
type Bests struct {
	Today    int `json:"today"`
	Week     int `json:"week"`
	AllTime  int `json:"all_time"`
	Recorded int `json:"recorded"`
}

// BestsOf summarises a ledger relative to now.
func BestsOf(l *Ledger, now time.Time) Bests {
	return Bests{
		Today:    l.BestToday(now),
		Week:     l.BestThisWeek(now),
		AllTime:  l.BestAllTime(),
		Recorded: l.Len(),
	}
}
