package score

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"simon-says/internal/simon"
)

// FileName is the JSON document written under the data directory.
const FileName = "highscores.json"

// Store loads and saves a complete HighScores document.
type Store interface {
	Load() (*HighScores, error)
	Save(h *HighScores) error
}

// Appender is implemented by stores shared between sessions. Keeper records
// a finished game through Append instead of rewriting the whole document.
type Appender interface {
	Append(d simon.Difficulty, e Entry) error
}

// Clock supplies the current time for dating and querying entries.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FileStore keeps high scores in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file and its directory
// are created on the first Save.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the document. A missing file yields empty ledgers and no error;
// unreadable or malformed files return an error.
func (s *FileStore) Load() (*HighScores, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewHighScores(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read high scores: %w", err)
	}
	h := NewHighScores()
	if err := json.Unmarshal(data, h); err != nil {
		return nil, fmt.Errorf("decode high scores %s: %w", s.path, err)
	}
	return h, nil
}

// Save rewrites the whole document. It writes to a temporary file in the
// same directory and renames it over the old one.
func (s *FileStore) Save(h *HighScores) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create score dir: %w", err)
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("encode high scores: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".highscores-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write high scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close high scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace high scores: %w", err)
	}
	return nil
}
