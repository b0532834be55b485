package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agpdev/cueview/internal/config"
	"github.com/agpdev/cueview/internal/lifecycle"
	"github.com/agpdev/cueview/internal/prefs"
	"github.com/agpdev/cueview/internal/refresh"
	"github.com/agpdev/cueview/internal/state"
	"github.com/agpdev/cueview/internal/tournament"
	"github.com/agpdev/cueview/internal/ui"
)

// Options are the command line overrides applied on top of the config file.
type Options struct {
	ConfigPath string
	FeedURL    string
	Poll       time.Duration
}

// Run wires the application together and blocks until the UI exits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.FeedURL != "" {
		cfg.FeedURL = opts.FeedURL
	}
	if opts.Poll > 0 {
		cfg.PollInterval = opts.Poll
	}
	if cfg.FeedURL == "" {
		return fmt.Errorf("no feed url: set feed_url in the config file or pass -url")
	}

	userPrefs := prefs.Load("")

	client, err := tournament.NewClient(cfg.FeedURL, cfg.RequestTimeout)
	if err != nil {
		return err
	}

	store := &state.Store{}
	gate := &lifecycle.Gate{}
	bridge := newUIBridge()

	refresher := refresh.New(refresh.Options{
		Client:         client,
		Store:          store,
		Gate:           gate,
		Notifier:       bridge,
		Reconciler:     bridge,
		PollInterval:   cfg.PollInterval,
		ManualCooldown: cfg.ManualCooldown,
	})

	if err := refresher.InitialLoad(ctx); err != nil {
		return err
	}
	refresher.Start(ctx)

	return ui.Run(ui.Options{
		Context:   ctx,
		Refresher: refresher,
		Store:     store,
		Gate:      gate,
		Config:    &cfg,
		ThemeName: userPrefs.Theme,
		Events:    bridge.events,
	})
}

// uiBridge carries refresh-core events into the Bubble Tea event loop. The
// channel is buffered and sends are non-blocking: the refresh core must never
// stall on a slow or quitting UI, so under backpressure events are dropped.
// Dropping is safe: a missed toast is cosmetic, and a missed snapshot
// notification is corrected by the next one (the store always holds the
// latest snapshot regardless).
type uiBridge struct {
	events chan tea.Msg
}

func newUIBridge() *uiBridge {
	return &uiBridge{events: make(chan tea.Msg, 16)}
}

// Notify implements refresh.Notifier.
func (b *uiBridge) Notify(kind refresh.Kind, message string, duration time.Duration) {
	b.send(ui.ToastMsg{Kind: kind, Message: message, Duration: duration})
}

// SnapshotReplaced implements refresh.Reconciler.
func (b *uiBridge) SnapshotReplaced(snap *tournament.Snapshot) {
	b.send(ui.SnapshotReplacedMsg{Snapshot: snap})
}

func (b *uiBridge) send(msg tea.Msg) {
	select {
	case b.events <- msg:
	default:
	}
}
