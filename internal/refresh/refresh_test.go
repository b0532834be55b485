package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agpdev/cueview/internal/lifecycle"
	"github.com/agpdev/cueview/internal/state"
	"github.com/agpdev/cueview/internal/tournament"
)

// fakeFetcher is a controllable Fetcher for exercising the refresh paths
// without a server.
type fakeFetcher struct {
	mu         sync.Mutex
	probeToken string
	probeErr   error
	fetchSnap  *tournament.Snapshot
	fetchErr   error

	fetchCalls atomic.Int32
	probeCalls atomic.Int32

	// When set, Fetch signals started and then blocks until release is
	// closed.
	started chan struct{}
	release chan struct{}
}

func (f *fakeFetcher) Probe(ctx context.Context) (string, error) {
	f.probeCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probeToken, f.probeErr
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*tournament.Snapshot, error) {
	f.fetchCalls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchSnap, f.fetchErr
}

func (f *fakeFetcher) setProbe(token string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probeToken = token
	f.probeErr = err
}

type recordedToast struct {
	kind    Kind
	message string
}

type fakeNotifier struct {
	mu     sync.Mutex
	toasts []recordedToast
}

func (n *fakeNotifier) Notify(kind Kind, message string, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, recordedToast{kind: kind, message: message})
}

func (n *fakeNotifier) all() []recordedToast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]recordedToast(nil), n.toasts...)
}

type fakeReconciler struct {
	calls atomic.Int32
}

func (r *fakeReconciler) SnapshotReplaced(snap *tournament.Snapshot) {
	r.calls.Add(1)
}

func testSnapshot(updated string) *tournament.Snapshot {
	return &tournament.Snapshot{
		Name:        "Spring Open",
		Players:     []tournament.Player{{Name: "Ana Silva"}},
		LastUpdated: updated,
	}
}

func newTestRefresher(fetcher *fakeFetcher, notifier *fakeNotifier, reconciler *fakeReconciler) *Refresher {
	opts := Options{
		Client: fetcher,
		Store:  &state.Store{},
		Gate:   &lifecycle.Gate{},
	}
	// Assign through the interface fields only when non-nil, so a nil
	// *fakeNotifier/*fakeReconciler does not become a non-nil interface
	// holding a typed nil.
	if notifier != nil {
		opts.Notifier = notifier
	}
	if reconciler != nil {
		opts.Reconciler = reconciler
	}
	return New(opts)
}

func TestInitialLoad(t *testing.T) {
	fetcher := &fakeFetcher{probeToken: "t1", fetchSnap: testSnapshot("2026-03-14 18:30:00")}
	notifier := &fakeNotifier{}
	r := newTestRefresher(fetcher, notifier, nil)

	if err := r.InitialLoad(context.Background()); err != nil {
		t.Fatalf("InitialLoad() error = %v", err)
	}
	if r.store.Current() == nil {
		t.Fatal("store empty after InitialLoad")
	}
	if got := r.token(); got != "t1" {
		t.Errorf("token = %q, want t1", got)
	}
	if toasts := notifier.all(); len(toasts) != 0 {
		t.Errorf("InitialLoad emitted toasts: %v", toasts)
	}
}

func TestInitialLoadFetchFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{fetchErr: errors.New("boom")}
	r := newTestRefresher(fetcher, nil, nil)

	if err := r.InitialLoad(context.Background()); err == nil {
		t.Fatal("InitialLoad() expected error")
	}
	if r.store.Current() != nil {
		t.Error("store must stay empty after failed InitialLoad")
	}
}

func TestInitialLoadProbeFailureTolerated(t *testing.T) {
	fetcher := &fakeFetcher{probeErr: errors.New("head not allowed"), fetchSnap: testSnapshot("")}
	r := newTestRefresher(fetcher, nil, nil)

	if err := r.InitialLoad(context.Background()); err != nil {
		t.Fatalf("InitialLoad() error = %v", err)
	}
	if got := r.token(); got != "" {
		t.Errorf("token = %q, want empty after probe failure", got)
	}
}

func TestRunSingleFlight(t *testing.T) {
	fetcher := &fakeFetcher{
		fetchSnap: testSnapshot("2026-03-14 18:30:00"),
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	r := newTestRefresher(fetcher, &fakeNotifier{}, nil)

	done := make(chan error, 1)
	go func() { done <- r.run(context.Background(), "t1") }()
	<-fetcher.started

	if !r.InFlight() {
		t.Error("InFlight() = false during fetch")
	}
	if err := r.run(context.Background(), "t2"); !errors.Is(err, ErrInFlight) {
		t.Errorf("concurrent run() error = %v, want ErrInFlight", err)
	}

	close(fetcher.release)
	if err := <-done; err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if r.InFlight() {
		t.Error("InFlight() = true after completion")
	}
	if got := fetcher.fetchCalls.Load(); got != 1 {
		t.Errorf("fetch calls = %d, want 1 (loser dropped, not queued)", got)
	}
	if got := r.token(); got != "t1" {
		t.Errorf("token = %q, want winner's t1", got)
	}
}

func TestRunFailureLeavesStoreAndToken(t *testing.T) {
	fetcher := &fakeFetcher{fetchSnap: testSnapshot("2026-03-14 18:30:00")}
	notifier := &fakeNotifier{}
	reconciler := &fakeReconciler{}
	r := newTestRefresher(fetcher, notifier, reconciler)

	if err := r.run(context.Background(), "t1"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	before := r.store.Current()

	fetcher.mu.Lock()
	fetcher.fetchErr = errors.New("boom")
	fetcher.mu.Unlock()

	if err := r.run(context.Background(), "t2"); err == nil {
		t.Fatal("run() expected error")
	}
	if r.store.Current() != before {
		t.Error("failed refresh must leave the previous snapshot in place")
	}
	if got := r.token(); got != "t1" {
		t.Errorf("token = %q, want t1 (failed refresh must retry next tick)", got)
	}
	if got := reconciler.calls.Load(); got != 1 {
		t.Errorf("reconciler calls = %d, want 1", got)
	}

	toasts := notifier.all()
	if len(toasts) != 2 {
		t.Fatalf("toasts = %v, want success then error", toasts)
	}
	if toasts[0].kind != KindSuccess || toasts[1].kind != KindError {
		t.Errorf("toast kinds = %v/%v, want success/error", toasts[0].kind, toasts[1].kind)
	}
}

func TestCheckOnceSkipsUnchangedToken(t *testing.T) {
	fetcher := &fakeFetcher{probeToken: "t1", fetchSnap: testSnapshot("2026-03-14 18:30:00")}
	r := newTestRefresher(fetcher, &fakeNotifier{}, nil)
	ctx := context.Background()

	if err := r.InitialLoad(ctx); err != nil {
		t.Fatalf("InitialLoad() error = %v", err)
	}
	loads := fetcher.fetchCalls.Load()

	// Same token: no fetch.
	r.checkOnce(ctx)
	if got := fetcher.fetchCalls.Load(); got != loads {
		t.Errorf("fetch calls = %d after unchanged probe, want %d", got, loads)
	}

	// Changed token: one fetch, token advances.
	fetcher.setProbe("t2", nil)
	r.checkOnce(ctx)
	if got := fetcher.fetchCalls.Load(); got != loads+1 {
		t.Errorf("fetch calls = %d after changed probe, want %d", got, loads+1)
	}
	if got := r.token(); got != "t2" {
		t.Errorf("token = %q, want t2", got)
	}
}

func TestCheckOnceSkipsEmptyToken(t *testing.T) {
	fetcher := &fakeFetcher{probeToken: "", fetchSnap: testSnapshot("")}
	r := newTestRefresher(fetcher, nil, nil)

	r.checkOnce(context.Background())
	if got := fetcher.fetchCalls.Load(); got != 0 {
		t.Errorf("fetch calls = %d for empty token, want 0", got)
	}
}

func TestCheckOnceProbeFailureNoFetch(t *testing.T) {
	fetcher := &fakeFetcher{probeErr: errors.New("timeout"), fetchSnap: testSnapshot("")}
	r := newTestRefresher(fetcher, nil, nil)

	r.checkOnce(context.Background())
	if got := fetcher.fetchCalls.Load(); got != 0 {
		t.Errorf("fetch calls = %d after probe failure, want 0", got)
	}
}

func TestManualRefreshCooldown(t *testing.T) {
	fetcher := &fakeFetcher{fetchSnap: testSnapshot("2026-03-14 18:30:00")}
	r := New(Options{
		Client:         fetcher,
		Store:          &state.Store{},
		Gate:           &lifecycle.Gate{},
		ManualCooldown: time.Minute,
	})
	ctx := context.Background()

	if err := r.ManualRefresh(ctx); err != nil {
		t.Fatalf("first ManualRefresh() error = %v", err)
	}

	err := r.ManualRefresh(ctx)
	var limited *RateLimitError
	if !errors.As(err, &limited) {
		t.Fatalf("second ManualRefresh() error = %v, want RateLimitError", err)
	}
	if limited.RetryIn <= 0 || limited.RetryIn > time.Minute {
		t.Errorf("RetryIn = %v, want within (0, 1m]", limited.RetryIn)
	}
	if got := fetcher.fetchCalls.Load(); got != 1 {
		t.Errorf("fetch calls = %d, want 1", got)
	}
}

func TestManualRefreshBypassesToken(t *testing.T) {
	fetcher := &fakeFetcher{probeToken: "t1", fetchSnap: testSnapshot("2026-03-14 18:30:00")}
	r := newTestRefresher(fetcher, nil, nil)
	ctx := context.Background()

	if err := r.InitialLoad(ctx); err != nil {
		t.Fatalf("InitialLoad() error = %v", err)
	}
	loads := fetcher.fetchCalls.Load()

	// An accepted manual refresh re-fetches even though the token is
	// unchanged, and leaves the token alone.
	if err := r.ManualRefresh(ctx); err != nil {
		t.Fatalf("ManualRefresh() error = %v", err)
	}
	if got := fetcher.fetchCalls.Load(); got != loads+1 {
		t.Errorf("fetch calls = %d, want %d", got, loads+1)
	}
	if got := r.token(); got != "t1" {
		t.Errorf("token = %q, want t1 unchanged", got)
	}
}

func TestManualRefreshWhileInFlight(t *testing.T) {
	fetcher := &fakeFetcher{
		fetchSnap: testSnapshot("2026-03-14 18:30:00"),
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	r := newTestRefresher(fetcher, &fakeNotifier{}, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- r.run(ctx, "") }()
	<-fetcher.started

	if err := r.ManualRefresh(ctx); !errors.Is(err, ErrInFlight) {
		t.Errorf("ManualRefresh() during fetch = %v, want ErrInFlight", err)
	}

	close(fetcher.release)
	if err := <-done; err != nil {
		t.Fatalf("run() error = %v", err)
	}

	// The dropped trigger cancelled its reservation, so an immediate
	// retry is not penalized.
	if err := r.ManualRefresh(ctx); err != nil {
		t.Errorf("ManualRefresh() after drop = %v, want nil", err)
	}
}

func TestManualRefreshAfterFinish(t *testing.T) {
	fetcher := &fakeFetcher{fetchSnap: testSnapshot("")}
	r := newTestRefresher(fetcher, nil, nil)

	ended := &tournament.Snapshot{
		Players: []tournament.Player{{Name: "A"}},
		EndDate: "2020-01-01",
	}
	r.store.Replace(ended)

	if err := r.ManualRefresh(context.Background()); !errors.Is(err, ErrFinished) {
		t.Errorf("ManualRefresh() = %v, want ErrFinished", err)
	}
	if got := fetcher.fetchCalls.Load(); got != 0 {
		t.Errorf("fetch calls = %d after finish, want 0", got)
	}
}

func TestRateLimitErrorMessage(t *testing.T) {
	err := &RateLimitError{RetryIn: 17 * time.Second}
	want := fmt.Sprintf("refresh requested too soon, retry in %ds", 17)
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSchedulerStopsWhenFinished(t *testing.T) {
	fetcher := &fakeFetcher{probeToken: "t1", fetchSnap: testSnapshot("")}
	r := New(Options{
		Client:       fetcher,
		Store:        &state.Store{},
		Gate:         &lifecycle.Gate{},
		PollInterval: 10 * time.Millisecond,
	})

	ended := &tournament.Snapshot{
		Players: []tournament.Player{{Name: "A"}},
		EndDate: "2020-01-01",
	}
	r.store.Replace(ended)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	time.Sleep(60 * time.Millisecond)
	if got := fetcher.probeCalls.Load(); got != 0 {
		t.Errorf("probe calls = %d for finished tournament, want 0", got)
	}
}

func TestSchedulerPolls(t *testing.T) {
	fetcher := &fakeFetcher{probeToken: "t1", fetchSnap: testSnapshot("2026-03-14 18:30:00")}
	r := New(Options{
		Client:       fetcher,
		Store:        &state.Store{},
		Gate:         &lifecycle.Gate{},
		PollInterval: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	deadline := time.After(time.Second)
	for fetcher.probeCalls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("scheduler never probed")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
}
