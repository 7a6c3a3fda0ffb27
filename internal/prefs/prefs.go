// Package prefs persists the player's menu choices in an INI file.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"simon-says/internal/simon"
)

// FileName is the preference file inside the data directory.
const FileName = "prefs.ini"

const section = "game"

// Prefs are the remembered menu choices.
type Prefs struct {
	Difficulty simon.Difficulty
	Sound      bool
}

// Defaults is used when the file is missing or a key is unreadable.
var Defaults = Prefs{Difficulty: simon.Medium, Sound: true}

// Load reads path. A missing file yields Defaults; an unparseable file yields
// Defaults and an error so the caller can log it.
func Load(path string) (Prefs, error) {
	f, err := ini.LooseLoad(path)
	if err != nil {
		return Defaults, fmt.Errorf("load prefs: %w", err)
	}
	sec := f.Section(section)
	p := Defaults
	if key := sec.Key("difficulty").String(); key != "" {
		d, err := simon.ParseDifficulty(key)
		if err != nil {
			return Defaults, fmt.Errorf("load prefs: %w", err)
		}
		p.Difficulty = d
	}
	p.Sound = sec.Key("sound").MustBool(Defaults.Sound)
	return p, nil
}

// Save writes p to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	f := ini.Empty()
	sec := f.Section(section)
	sec.Key("difficulty").SetValue(p.Difficulty.Key())
	sec.Key("sound").SetValue(fmt.Sprintf("%t", p.Sound))
	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}
