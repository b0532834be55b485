package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")

	p := Load(path)
	if p.Theme != "Dracula" {
		t.Errorf("Theme = %q, want default Dracula", p.Theme)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = "), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}

	p := Load(path)
	if p.Theme != "Dracula" {
		t.Errorf("Theme = %q, want default after parse failure", p.Theme)
	}
}

func TestLoadBlankThemeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte(`theme = "  "`), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}

	p := Load(path)
	if p.Theme != "Dracula" {
		t.Errorf("Theme = %q, want default for blank value", p.Theme)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.toml")

	if err := Save(path, Prefs{Theme: "Slate"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	p := Load(path)
	if p.Theme != "Slate" {
		t.Errorf("Theme = %q after round trip, want Slate", p.Theme)
	}
}
