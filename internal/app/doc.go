// Package app wires the cueview components together.
//
// # Startup Order
//
// Run builds the dependency graph bottom-up: config (file plus flag
// overrides), preferences, the feed client, the snapshot store, the
// lifecycle gate, and the refresher. It then performs the initial load
// (fatal on failure, since the viewer has nothing to show without a first
// snapshot), starts the background change-detection loop, and hands control
// to the UI until the user quits.
//
// # The Bridge
//
// The refresh core and the UI run on different event loops. uiBridge
// adapts between them: it implements the refresh core's Notifier and
// Reconciler interfaces and forwards each event as a Bubble Tea message
// over a buffered channel the UI drains. Sends never block.
package app
