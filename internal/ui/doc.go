// Package ui implements the cueview terminal interface using Bubble Tea.
//
// # Overview
//
// The UI is a single Bubble Tea model with three tabs (Players, Matches,
// Summary) rendered into a shared viewport under a header and command
// bar. All tournament data comes from the snapshot the refresh core last
// swapped into the store; the UI never fetches anything itself.
//
// # Reconciliation
//
// When the refresh core replaces the snapshot it sends a SnapshotReplacedMsg
// through the events channel. The model swaps its snapshot pointer and
// re-renders only the active tab. Everything that belongs to the user (the
// selected tab, filter and search state, theme, and the viewport scroll
// offset) is deliberately left untouched, so a background refresh never
// yanks the view out from under the user. Filters re-applied to the new
// snapshot may naturally produce different rows; that is data changing, not
// view state changing.
//
// # Event Flow
//
// The refresh core runs outside Bubble Tea's event loop, so its toasts and
// snapshot notifications arrive through a channel that a self-rescheduling
// command drains: each received message returns to Update, which handles it
// and immediately re-arms the wait. A once-a-second tick re-evaluates the
// lifecycle phase and expires toasts.
//
// # Filters
//
// PlayerFilters and MatchFilters are pure value types: Apply takes a slice
// and returns the matching subset in feed order. Keeping them free of UI
// state makes the filter semantics directly testable and guarantees a
// snapshot swap cannot corrupt them.
package ui
