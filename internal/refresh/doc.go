// Package refresh keeps the displayed tournament snapshot in sync with the
// remote feed without losing user state or racing itself.
//
// # Overview
//
// Two independent triggers funnel into one executor:
//
//   - The scheduler ticks at a fixed cadence (default 30s), probes the feed
//     for a change token (the Last-Modified header), and fetches the full
//     document only when the token differs from the last one seen.
//   - The manual path fetches unconditionally on user request, throttled by
//     a minimum-interval cooldown (default 30s, an independent setting).
//
// The executor fetches, validates, atomically swaps the snapshot store, and
// tells the reconciler to re-render the active view.
//
// # Single Flight
//
// At most one fetch-and-swap cycle runs at a time. The guard is an
// atomic.Bool set with CompareAndSwap before the first network call and
// released by defer, so a trigger arriving mid-cycle (timer or manual)
// is dropped with ErrInFlight, never queued. A dropped manual trigger does
// not consume the cooldown.
//
// # Failure Behavior
//
// Transport, decode, and validation failures all leave the store untouched
// and surface as an error toast through the Notifier; the previous snapshot
// stays on screen. The change token is recorded only after a successful
// swap, so a failed refresh is retried on the next tick. Fetches carry an
// explicit HTTP timeout, so a stalled request cannot hold the single-flight
// guard forever.
//
// # Lifecycle Gating
//
// Every tick and every manual request first consults the lifecycle gate.
// Once the gate latches Finished, the scheduler goroutine exits (the ticker
// is stopped and never re-armed) and manual requests fail with ErrFinished
// for the rest of the session.
//
// # Notifications
//
// The core depends only on the Notifier interface, a
// notify(kind, message, duration) surface, and never on any UI toolkit.
// Success toasts last 3s, error toasts 5s.
package refresh
