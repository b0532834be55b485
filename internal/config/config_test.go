package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FeedURL != "" {
		t.Errorf("FeedURL = %q, want empty", cfg.FeedURL)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval)
	}
	if cfg.ManualCooldown != 30*time.Second {
		t.Errorf("ManualCooldown = %v, want 30s", cfg.ManualCooldown)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.Location != time.Local {
		t.Errorf("Location = %v, want local", cfg.Location)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
feed_url = "https://example.org/data/tournament.json"
poll_seconds = 15
manual_cooldown_seconds = 45
request_timeout_seconds = 5
timezone = "Europe/Madrid"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FeedURL != "https://example.org/data/tournament.json" {
		t.Errorf("FeedURL = %q", cfg.FeedURL)
	}
	if cfg.PollInterval != 15*time.Second {
		t.Errorf("PollInterval = %v, want 15s", cfg.PollInterval)
	}
	if cfg.ManualCooldown != 45*time.Second {
		t.Errorf("ManualCooldown = %v, want 45s", cfg.ManualCooldown)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.Location == nil || cfg.Location.String() != "Europe/Madrid" {
		t.Errorf("Location = %v, want Europe/Madrid", cfg.Location)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `feed_url = "example.org/t.json"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FeedURL != "example.org/t.json" {
		t.Errorf("FeedURL = %q", cfg.FeedURL)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want default 30s", cfg.PollInterval)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed toml",
			content: `feed_url = `,
		},
		{
			name:    "unknown timezone",
			content: `timezone = "Mars/Olympus_Mons"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestLoadIgnoresNonPositiveDurations(t *testing.T) {
	path := writeConfig(t, `
poll_seconds = 0
manual_cooldown_seconds = -5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want default 30s", cfg.PollInterval)
	}
	if cfg.ManualCooldown != 30*time.Second {
		t.Errorf("ManualCooldown = %v, want default 30s", cfg.ManualCooldown)
	}
}
