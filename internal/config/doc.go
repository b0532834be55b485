// Package config handles loading and parsing the cueview configuration file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/cueview/config.toml (default)
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing, use per-field defaults
//
// # TOML Format
//
// Example config.toml:
//
//	feed_url = "https://example.org/data/tournament.json"
//	poll_seconds = 30
//	manual_cooldown_seconds = 30
//	request_timeout_seconds = 10
//	timezone = "Europe/Madrid"
//
// All fields are optional in the file; a missing feed_url must be supplied
// via the -url flag instead. poll_seconds and manual_cooldown_seconds
// happen to share a default but are independent settings.
//
// The timezone only affects how timestamps are displayed. Tournament phase
// is derived from instants and is timezone-independent.
//
// # Error Handling
//
// Missing config files are NOT an error; defaults are used so cueview
// works with nothing but a -url flag. Load returns errors for unreadable
// files, TOML parse failures, and unknown timezone names.
package config
