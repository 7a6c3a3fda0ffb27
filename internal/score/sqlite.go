package score

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"simon-says/internal/simon"
)

// SQLiteDB stores the histories of many players in one database. The SSH
// server hands each connection a per-player Store view.
type SQLiteDB struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
func OpenSQLite(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer at a time keeps concurrent sessions from tripping SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	s := &SQLiteDB{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error { return s.db.Close() }

func (s *SQLiteDB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			date TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player, difficulty, id)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(difficulty, score DESC)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Player returns a Store holding only the named player's history. It also
// implements Appender, so a Keeper on it only ever inserts rows.
func (s *SQLiteDB) Player(name string) Store {
	return &playerStore{db: s.db, player: name}
}

// PlayerScores loads one player's history, bounded by ctx.
func (s *SQLiteDB) PlayerScores(ctx context.Context, name string) (*HighScores, error) {
	return (&playerStore{db: s.db, player: name}).LoadContext(ctx)
}

// Ranked is one row of a cross-player leaderboard.
type Ranked struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
	Date   string `json:"date"`
}

// Top returns the highest scores recorded for d across all players, best
// first. Ties go to the earlier date.
func (s *SQLiteDB) Top(ctx context.Context, d simon.Difficulty, limit int) ([]Ranked, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, score, date FROM scores
		 WHERE difficulty = ?
		 ORDER BY score DESC, date ASC, id ASC
		 LIMIT ?`, d.Key(), limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	out := []Ranked{}
	for rows.Next() {
		var r Ranked
		if err := rows.Scan(&r.Player, &r.Score, &r.Date); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type playerStore struct {
	db     *sql.DB
	player string
}

func (p *playerStore) Load() (*HighScores, error) {
	return p.LoadContext(context.Background())
}

// LoadContext reads the player's history, oldest first.
func (p *playerStore) LoadContext(ctx context.Context) (*HighScores, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT difficulty, score, date FROM scores WHERE player = ? ORDER BY id ASC`, p.player)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	h := NewHighScores()
	for rows.Next() {
		var (
			key string
			e   Entry
		)
		if err := rows.Scan(&key, &e.Score, &e.Date); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		d, err := simon.ParseDifficulty(key)
		if err != nil {
			continue
		}
		l := h.Ledger(d)
		l.entries = append(l.entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return h, nil
}

// Append records one entry. Rows written by other sessions of the same
// player are left alone.
func (p *playerStore) Append(d simon.Difficulty, e Entry) error {
	_, err := p.db.Exec(`INSERT INTO scores (player, difficulty, score, date) VALUES (?, ?, ?, ?)`,
		p.player, d.Key(), e.Score, e.Date)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// Save inserts the entries of each ledger beyond those already stored for
// the player. Existing rows are never deleted or rewritten.
func (p *playerStore) Save(h *HighScores) error {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	stmt, err := tx.Prepare(`INSERT INTO scores (player, difficulty, score, date) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range simon.Difficulties {
		var stored int
		err := tx.QueryRow(`SELECT COUNT(*) FROM scores WHERE player = ? AND difficulty = ?`,
			p.player, d.Key()).Scan(&stored)
		if err != nil {
			return fmt.Errorf("count scores: %w", err)
		}
		entries := h.Ledger(d).entries
		for i := stored; i < len(entries); i++ {
			if _, err := stmt.Exec(p.player, d.Key(), entries[i].Score, entries[i].Date); err != nil {
				return fmt.Errorf("insert score: %w", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scores: %w", err)
	}
	return nil
}
