// Package lifecycle derives the tournament phase from the snapshot's
// optional start and end dates and gates whether refreshing is permitted.
package lifecycle

import (
	"sync"
	"time"

	"github.com/agpdev/cueview/internal/tournament"
)

// Phase is the tournament's lifecycle state at a point in time.
type Phase int

const (
	PhaseUpcoming Phase = iota
	PhaseActive
	PhaseFinished
)

// String returns the phase's identifier.
func (p Phase) String() string {
	switch p {
	case PhaseUpcoming:
		return "upcoming"
	case PhaseFinished:
		return "finished"
	}
	return "active"
}

// Banner returns the phase's display banner.
func (p Phase) Banner() string {
	switch p {
	case PhaseUpcoming:
		return "UPCOMING"
	case PhaseFinished:
		return "FINISHED"
	}
	return "LIVE"
}

// PhaseAt derives the phase from optional start/end instants. Zero times
// mean the feed carries no date; missing dates fail open to Active so the
// viewer keeps working. Comparison uses instants, so the result is
// timezone-independent.
func PhaseAt(start, end, now time.Time) Phase {
	if !end.IsZero() && !now.Before(end) {
		return PhaseFinished
	}
	if !start.IsZero() && now.Before(start) {
		return PhaseUpcoming
	}
	return PhaseActive
}

// Gate evaluates the phase against live snapshots and latches Finished: a
// tournament cannot un-finish, so once any snapshot reports the end date as
// passed, the gate keeps answering Finished for the rest of the session
// even if a later snapshot drops the date.
type Gate struct {
	mu       sync.Mutex
	finished bool
}

// Evaluate returns the phase for the given snapshot at the given instant,
// applying the Finished latch. A nil snapshot evaluates to Active (nothing
// is known yet, so nothing may be disabled).
func (g *Gate) Evaluate(snap *tournament.Snapshot, now time.Time) Phase {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return PhaseFinished
	}
	if snap == nil {
		return PhaseActive
	}
	phase := PhaseAt(snap.StartAt(), snap.EndAt(), now)
	if phase == PhaseFinished {
		g.finished = true
	}
	return phase
}

// PollingAllowed reports whether automatic and manual refreshing are still
// permitted. Upcoming tournaments allow polling: the resource may still be
// created or updated before the start date. Only Finished disables it.
func (g *Gate) PollingAllowed(snap *tournament.Snapshot, now time.Time) bool {
	return g.Evaluate(snap, now) != PhaseFinished
}
