package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings cueview needs to watch a tournament feed.
type Config struct {
	FeedURL        string
	PollInterval   time.Duration
	ManualCooldown time.Duration
	RequestTimeout time.Duration
	// Location is used for displaying timestamps only; phase comparisons
	// work on instants and ignore it.
	Location *time.Location
}

const (
	defaultConfigPath = "~/.config/cueview/config.toml"

	defaultPollSeconds           = 30
	defaultManualCooldownSeconds = 30
	defaultRequestTimeoutSeconds = 10
)

// Load locates and parses the cueview config, falling back to defaults when
// missing. A missing file is not an error; the feed URL can still arrive
// via flag.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		FeedURL               string `toml:"feed_url"`
		PollSeconds           int    `toml:"poll_seconds"`
		ManualCooldownSeconds int    `toml:"manual_cooldown_seconds"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		Timezone              string `toml:"timezone"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.FeedURL = strings.TrimSpace(raw.FeedURL)
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.ManualCooldownSeconds > 0 {
		cfg.ManualCooldown = time.Duration(raw.ManualCooldownSeconds) * time.Second
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if tz := strings.TrimSpace(raw.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("parse timezone %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		PollInterval:   defaultPollSeconds * time.Second,
		ManualCooldown: defaultManualCooldownSeconds * time.Second,
		RequestTimeout: defaultRequestTimeoutSeconds * time.Second,
		Location:       time.Local,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
