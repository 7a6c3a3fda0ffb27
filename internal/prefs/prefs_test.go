package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"simon-says/internal/simon"
)

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != Defaults {
		t.Errorf("prefs = %+v, want defaults", p)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	want := Prefs{Difficulty: simon.Hard, Sound: false}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "[game]") || !strings.Contains(string(data), "hard") {
		t.Errorf("file contents = %q", data)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("prefs = %+v, want %+v", got, want)
	}
}

func TestLoadBadValues(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    Prefs
		wantErr bool
	}{
		{"unknown difficulty", "[game]\ndifficulty = nightmare\n", Defaults, true},
		{"bad sound flag falls back", "[game]\ndifficulty = easy\nsound = maybe\n", Prefs{simon.Easy, true}, false},
		{"mixed case", "[game]\ndifficulty = HARD\nsound = off\n", Prefs{simon.Hard, false}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("prefs = %+v, want %+v", got, tc.want)
			}
		})
	}
}
