package refresh

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/agpdev/cueview/internal/lifecycle"
	"github.com/agpdev/cueview/internal/state"
	"github.com/agpdev/cueview/internal/tournament"
)

// Kind classifies a user-facing notification.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

// Toast display durations by outcome.
const (
	SuccessDuration = 3 * time.Second
	ErrorDuration   = 5 * time.Second
)

const (
	defaultPollInterval   = 30 * time.Second
	defaultManualCooldown = 30 * time.Second
)

// Notifier receives transient user-facing notifications. The refresh core
// depends only on this interface; the app wires it to the UI's toast surface.
type Notifier interface {
	Notify(kind Kind, message string, duration time.Duration)
}

// Reconciler is told when a new snapshot has been swapped into the store so
// the active view can be re-rendered. Implementations must not block.
type Reconciler interface {
	SnapshotReplaced(snap *tournament.Snapshot)
}

// ErrInFlight reports a refresh trigger dropped because a fetch-and-swap
// cycle is already running. Triggers are dropped, never queued.
var ErrInFlight = errors.New("refresh already in flight")

// ErrFinished reports a refresh rejected because the tournament is over.
var ErrFinished = errors.New("tournament is finished")

// RateLimitError reports a manual refresh rejected by the cooldown.
type RateLimitError struct {
	// RetryIn is the remaining wait, rounded up to whole seconds.
	RetryIn time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("refresh requested too soon, retry in %ds", int(e.RetryIn.Seconds()))
}

// Options configure a Refresher.
type Options struct {
	Client     tournament.Fetcher
	Store      *state.Store
	Gate       *lifecycle.Gate
	Notifier   Notifier
	Reconciler Reconciler

	// PollInterval is the cadence of the background change check.
	// ManualCooldown is the minimum spacing between accepted manual
	// refreshes. They default to 30s each but are deliberately
	// independent settings.
	PollInterval   time.Duration
	ManualCooldown time.Duration
}

// Refresher owns the refresh lifecycle for the tournament feed: the
// background change-detection loop, the manually triggered refresh path,
// and the single fetch-and-swap executor both funnel into.
type Refresher struct {
	client     tournament.Fetcher
	store      *state.Store
	gate       *lifecycle.Gate
	notifier   Notifier
	reconciler Reconciler
	interval   time.Duration

	// updating is the single-flight guard: at most one fetch-and-swap
	// cycle is admitted at a time, and losers are dropped.
	updating atomic.Bool

	limiter *rate.Limiter

	mu        sync.Mutex
	lastToken string
}

// New builds a Refresher. Client, Store, and Gate are required.
func New(opts Options) *Refresher {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	cooldown := opts.ManualCooldown
	if cooldown <= 0 {
		cooldown = defaultManualCooldown
	}
	return &Refresher{
		client:     opts.Client,
		store:      opts.Store,
		gate:       opts.Gate,
		notifier:   opts.Notifier,
		reconciler: opts.Reconciler,
		interval:   interval,
		limiter:    rate.NewLimiter(rate.Every(cooldown), 1),
	}
}

// InitialLoad fetches the document once, before the UI starts, and seeds
// the change token so an unchanged feed does not trigger a redundant fetch
// on the first timer tick. Unlike later refreshes, a failure here is fatal:
// the viewer has nothing to display without a first snapshot.
func (r *Refresher) InitialLoad(ctx context.Context) error {
	token, err := r.client.Probe(ctx)
	if err != nil {
		token = ""
	}

	snap, err := r.client.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("load tournament feed: %w", err)
	}
	r.store.Replace(snap)
	r.setToken(token)
	return nil
}

// ManualRefresh runs a full refresh on user request. It is subject to the
// cooldown but bypasses change-token comparison: an accepted manual request
// always re-fetches. A request arriving while a cycle is in flight is a
// no-op and does not consume the cooldown.
func (r *Refresher) ManualRefresh(ctx context.Context) error {
	if !r.gate.PollingAllowed(r.store.Current(), time.Now()) {
		return ErrFinished
	}

	res := r.limiter.Reserve()
	if delay := res.Delay(); delay > 0 {
		res.Cancel()
		return &RateLimitError{RetryIn: ceilSeconds(delay)}
	}

	err := r.run(ctx, "")
	if errors.Is(err, ErrInFlight) {
		res.Cancel()
	}
	return err
}

// InFlight reports whether a fetch-and-swap cycle is currently running.
func (r *Refresher) InFlight() bool {
	return r.updating.Load()
}

// run is the refresh executor: it fetches the full document, swaps it into
// the store, and notifies the reconciler. On any failure the store is left
// untouched. When token is non-empty it is recorded as the last seen change
// token, but only after a successful swap so a failed refresh is retried on
// the next timer tick.
func (r *Refresher) run(ctx context.Context, token string) error {
	if !r.updating.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer r.updating.Store(false)

	snap, err := r.client.Fetch(ctx)
	if err != nil {
		r.notify(KindError, "Could not update tournament data", ErrorDuration)
		return err
	}

	r.store.Replace(snap)
	if token != "" {
		r.setToken(token)
	}
	if r.reconciler != nil {
		r.reconciler.SnapshotReplaced(snap)
	}
	r.notify(KindSuccess, "Tournament data updated", SuccessDuration)
	return nil
}

func (r *Refresher) notify(kind Kind, message string, duration time.Duration) {
	if r.notifier != nil {
		r.notifier.Notify(kind, message, duration)
	}
}

func (r *Refresher) token() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastToken
}

func (r *Refresher) setToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastToken = token
}

func ceilSeconds(d time.Duration) time.Duration {
	return time.Duration(math.Ceil(d.Seconds())) * time.Second
}
