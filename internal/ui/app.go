package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agpdev/cueview/internal/config"
	"github.com/agpdev/cueview/internal/lifecycle"
	"github.com/agpdev/cueview/internal/prefs"
	"github.com/agpdev/cueview/internal/refresh"
	"github.com/agpdev/cueview/internal/state"
	"github.com/agpdev/cueview/internal/tournament"
)

// Tab identifies the active view.
type Tab int

const (
	TabPlayers Tab = iota
	TabMatches
	TabSummary
)

// Title returns the tab's display name.
func (t Tab) Title() string {
	switch t {
	case TabMatches:
		return "Matches"
	case TabSummary:
		return "Summary"
	}
	return "Players"
}

const uiTick = time.Second

// chromeRows is the number of non-content rows: header, command bar, footer.
const chromeRows = 3

// Options configures the UI.
type Options struct {
	Context   context.Context
	Refresher *refresh.Refresher
	Store     *state.Store
	Gate      *lifecycle.Gate
	Config    *config.Config
	ThemeName string
	PrefsPath string

	// Events delivers ToastMsg and SnapshotReplacedMsg values from the
	// refresh core.
	Events <-chan tea.Msg
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	refresher *refresh.Refresher
	store     *state.Store
	gate      *lifecycle.Gate
	cfg       *config.Config
	events    <-chan tea.Msg
	prefsPath string

	theme  Theme
	width  int
	height int
	ready  bool

	activeTab Tab
	snapshot  *tournament.Snapshot
	phase     lifecycle.Phase

	playerFilters PlayerFilters
	matchFilters  MatchFilters

	searchMode  bool
	searchInput textinput.Model
	searchPrev  string

	content viewport.Model

	toast    toast
	showHelp bool
}

// toast is the transient notification currently on screen, if any.
type toast struct {
	kind      refresh.Kind
	text      string
	expiresAt time.Time
}

func (t toast) active(now time.Time) bool {
	return t.text != "" && now.Before(t.expiresAt)
}

// Messages

type tickMsg time.Time

type manualRefreshMsg struct{ err error }

// SnapshotReplacedMsg announces that the refresh executor swapped a new
// snapshot into the store.
type SnapshotReplacedMsg struct {
	Snapshot *tournament.Snapshot
}

// ToastMsg surfaces a transient notification from the refresh core.
type ToastMsg struct {
	Kind     refresh.Kind
	Message  string
	Duration time.Duration
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 64

	m := Model{
		ctx:         ctx,
		refresher:   opts.Refresher,
		store:       opts.Store,
		gate:        opts.Gate,
		cfg:         opts.Config,
		events:      opts.Events,
		prefsPath:   prefsPath,
		theme:       GetTheme(themeName),
		activeTab:   TabPlayers,
		searchInput: input,
	}
	if opts.Store != nil {
		m.snapshot = opts.Store.Current()
	}
	if opts.Gate != nil {
		m.phase = opts.Gate.Evaluate(m.snapshot, time.Now())
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(),
	}
	if m.events != nil {
		cmds = append(cmds, waitForEvent(m.events))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.content = viewport.New(msg.Width, max(msg.Height-chromeRows, 1))
			m.ready = true
		} else {
			m.content.Width = msg.Width
			m.content.Height = max(msg.Height-chromeRows, 1)
		}
		m.refreshContent()
		return m, nil

	case tickMsg:
		if m.gate != nil {
			m.phase = m.gate.Evaluate(m.snapshot, time.Now())
		}
		return m, tickCmd()

	case SnapshotReplacedMsg:
		// Only the active tab is re-rendered; filter and search state
		// carry over untouched, and the scroll offset is preserved.
		m.snapshot = msg.Snapshot
		m.refreshContent()
		return m, waitForEvent(m.events)

	case ToastMsg:
		m.toast = toast{
			kind:      msg.Kind,
			text:      msg.Message,
			expiresAt: time.Now().Add(msg.Duration),
		}
		return m, waitForEvent(m.events)

	case manualRefreshMsg:
		return m.handleManualRefreshResult(msg.err), nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderHeader() + "\n" +
		m.renderCommandBar() + "\n" +
		m.content.View() + "\n" +
		m.renderFooter()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searchMode {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "e":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		m.refreshContent()
		return m, nil

	case "1", "p":
		m.switchTab(TabPlayers)
		return m, nil

	case "2", "m":
		m.switchTab(TabMatches)
		return m, nil

	case "3", "s":
		m.switchTab(TabSummary)
		return m, nil

	case "tab":
		m.switchTab((m.activeTab + 1) % 3)
		return m, nil

	case "shift+tab":
		m.switchTab((m.activeTab + 2) % 3)
		return m, nil

	case "/":
		if m.activeTab != TabSummary {
			m.startSearch()
		}
		return m, nil

	case "f":
		m.cyclePrimaryFilter()
		return m, nil

	case "F":
		m.cycleStatusFilter()
		return m, nil

	case "R":
		if m.activeTab == TabPlayers {
			m.playerFilters.Rank = cycleOption(m.playerFilters.Rank, rankOptions())
			m.applyFilterChange()
		}
		return m, nil

	case "c":
		m.clearFilters()
		return m, nil

	case "r":
		return m, m.manualRefreshCmd()

	case "j", "down":
		m.content.ScrollDown(1)
		return m, nil

	case "k", "up":
		m.content.ScrollUp(1)
		return m, nil

	case "ctrl+d":
		m.content.HalfPageDown()
		return m, nil

	case "ctrl+u":
		m.content.HalfPageUp()
		return m, nil

	case "g", "home":
		m.content.GotoTop()
		return m, nil

	case "G", "end":
		m.content.GotoBottom()
		return m, nil
	}

	return m, nil
}

// handleSearchKey processes keyboard input while the search prompt is open.
// The filter tracks the input live so results narrow as the user types.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		// Revert to the search that was active before the prompt opened.
		m.searchMode = false
		m.searchInput.Blur()
		m.setActiveSearch(m.searchPrev)
		m.refreshContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.setActiveSearch(m.searchInput.Value())
	m.refreshContent()
	return m, cmd
}

func (m *Model) startSearch() {
	m.searchMode = true
	m.searchPrev = m.activeSearch()
	m.searchInput.SetValue(m.searchPrev)
	m.searchInput.CursorEnd()
	m.searchInput.Focus()
}

func (m *Model) activeSearch() string {
	if m.activeTab == TabMatches {
		return m.matchFilters.Search
	}
	return m.playerFilters.Search
}

func (m *Model) setActiveSearch(value string) {
	if m.activeTab == TabMatches {
		m.matchFilters.Search = value
		return
	}
	m.playerFilters.Search = value
}

func (m *Model) switchTab(tab Tab) {
	if m.activeTab == tab {
		return
	}
	m.activeTab = tab
	m.content.GotoTop()
	m.refreshContent()
}

func (m *Model) cyclePrimaryFilter() {
	if m.snapshot == nil {
		return
	}
	switch m.activeTab {
	case TabPlayers:
		m.playerFilters.League = cycleOption(m.playerFilters.League, leagueOptions(m.snapshot.Players))
	case TabMatches:
		m.matchFilters.Round = cycleOption(m.matchFilters.Round, roundOptions(m.snapshot.Matches))
	default:
		return
	}
	m.applyFilterChange()
}

func (m *Model) cycleStatusFilter() {
	switch m.activeTab {
	case TabPlayers:
		m.playerFilters.Status = cycleOption(m.playerFilters.Status,
			[]string{StatusQualified, StatusUnqualified})
	case TabMatches:
		m.matchFilters.Status = cycleOption(m.matchFilters.Status,
			[]string{tournament.MatchWaiting, tournament.MatchPlaying, tournament.MatchFinished})
	default:
		return
	}
	m.applyFilterChange()
}

func (m *Model) clearFilters() {
	switch m.activeTab {
	case TabPlayers:
		m.playerFilters = PlayerFilters{}
	case TabMatches:
		m.matchFilters = MatchFilters{}
	default:
		return
	}
	m.applyFilterChange()
}

func (m *Model) applyFilterChange() {
	m.content.GotoTop()
	m.refreshContent()
}

// refreshContent re-renders the active tab into the viewport, keeping the
// scroll position.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	offset := m.content.YOffset
	m.content.SetContent(m.renderActiveTab())
	m.content.SetYOffset(offset)
}

func (m *Model) renderActiveTab() string {
	if m.snapshot == nil {
		return m.theme.Styles().MutedText.Render("Waiting for tournament data...")
	}
	switch m.activeTab {
	case TabMatches:
		return m.renderMatches()
	case TabSummary:
		return m.renderSummary()
	default:
		return m.renderPlayers()
	}
}

func (m Model) handleManualRefreshResult(err error) Model {
	if err == nil {
		// Success and fetch-failure toasts arrive through the refresh
		// core's notifier.
		return m
	}

	var limited *refresh.RateLimitError
	switch {
	case errors.As(err, &limited):
		m.toast = toast{
			kind:      refresh.KindError,
			text:      fmt.Sprintf("Too soon, retry in %ds", int(limited.RetryIn.Seconds())),
			expiresAt: time.Now().Add(refresh.ErrorDuration),
		}
	case errors.Is(err, refresh.ErrFinished):
		m.toast = toast{
			kind:      refresh.KindInfo,
			text:      "Tournament finished, results are final",
			expiresAt: time.Now().Add(refresh.SuccessDuration),
		}
	case errors.Is(err, refresh.ErrInFlight):
		// A refresh is already running; nothing to report.
	}
	return m
}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForEvent(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m Model) manualRefreshCmd() tea.Cmd {
	refresher := m.refresher
	ctx := m.ctx
	if refresher == nil {
		return nil
	}
	return func() tea.Msg {
		return manualRefreshMsg{err: refresher.ManualRefresh(ctx)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
