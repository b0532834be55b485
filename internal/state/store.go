package state

import (
	"sync"
	"time"

	"github.com/agpdev/cueview/internal/tournament"
)

// Store owns the last successfully fetched tournament snapshot. Snapshots
// are immutable once fetched, so the swap is a single pointer reassignment
// under the lock and readers share the stored instance.
type Store struct {
	mu        sync.RWMutex
	snap      *tournament.Snapshot
	fetchedAt time.Time
}

// Current returns the stored snapshot. The returned document is shared and
// read-only. It is nil only before the first successful load.
func (s *Store) Current() *tournament.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Replace atomically swaps in a newly fetched snapshot. Only the refresh
// executor calls this, and only with a validated document; a failed fetch
// never reaches Replace.
func (s *Store) Replace(snap *tournament.Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.fetchedAt = time.Now()
}

// FetchedAt returns when the current snapshot was stored, or the zero time
// before the first load.
func (s *Store) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}
