package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agpdev/cueview/internal/lifecycle"
	"github.com/agpdev/cueview/internal/refresh"
)

// renderHeader draws the top bar: logo, tournament name, phase banner on the
// left; refresh status, last-updated, and any active toast on the right.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	left := styles.Logo.Render("cueview")
	if m.snapshot != nil && m.snapshot.Name != "" {
		left += styles.FaintText.Render(" │ ") + styles.Text.Render(m.snapshot.Name)
	}
	left += " " + m.renderPhaseBanner()

	right := m.renderHeaderStatus()

	return m.barLine(styles.Header, left, right)
}

func (m Model) renderPhaseBanner() string {
	styles := m.theme.Styles()
	switch m.phase {
	case lifecycle.PhaseUpcoming:
		return styles.InfoText.Render("● UPCOMING")
	case lifecycle.PhaseFinished:
		return styles.MutedText.Render("● FINISHED")
	}
	return styles.SuccessText.Render("● LIVE")
}

// renderHeaderStatus picks the most urgent item for the header's right side:
// an active toast wins, then the in-flight indicator, then the last-updated
// stamp.
func (m Model) renderHeaderStatus() string {
	styles := m.theme.Styles()
	now := time.Now()

	if m.toast.active(now) {
		switch m.toast.kind {
		case refresh.KindSuccess:
			return styles.SuccessText.Render("✓ " + m.toast.text)
		case refresh.KindError:
			return styles.DangerText.Render("✗ " + m.toast.text)
		}
		return styles.InfoText.Render(m.toast.text)
	}

	if m.refresher != nil && m.refresher.InFlight() {
		return styles.WarningText.Render("Refreshing…")
	}

	if m.snapshot == nil {
		return styles.MutedText.Render("no data")
	}
	updated := m.snapshot.UpdatedAt()
	if updated.IsZero() {
		return styles.MutedText.Render("updated: unknown")
	}
	loc := time.Local
	if m.cfg != nil && m.cfg.Location != nil {
		loc = m.cfg.Location
	}
	stamp := updated.In(loc).Format("15:04:05")
	return styles.MutedText.Render(
		fmt.Sprintf("updated %s (%s)", stamp, relativeAge(now.Sub(updated))))
}

// relativeAge formats a duration as a compact "how long ago" string.
func relativeAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// renderCommandBar draws the tab strip with per-tab counts and the active
// filter summary.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var tabs []string
	for _, tab := range []Tab{TabPlayers, TabMatches, TabSummary} {
		label := fmt.Sprintf("%d:%s", int(tab)+1, tab.Title())
		if count, ok := m.tabCount(tab); ok {
			label += fmt.Sprintf(" (%d)", count)
		}
		if tab == m.activeTab {
			tabs = append(tabs, styles.AccentText.Bold(true).Render("["+label+"]"))
		} else {
			tabs = append(tabs, styles.MutedText.Render(" "+label+" "))
		}
	}
	left := strings.Join(tabs, " ")

	right := m.filterSummary()
	return m.barLine(styles.Footer, left, right)
}

// tabCount returns the filtered row count for a tab. Summary has no count.
func (m Model) tabCount(tab Tab) (int, bool) {
	if m.snapshot == nil {
		return 0, false
	}
	switch tab {
	case TabPlayers:
		return len(m.playerFilters.Apply(m.snapshot.Players)), true
	case TabMatches:
		return len(m.matchFilters.Apply(m.snapshot.Matches)), true
	}
	return 0, false
}

// filterSummary describes the active tab's filters, or empty when none are set.
func (m Model) filterSummary() string {
	styles := m.theme.Styles()
	var parts []string

	switch m.activeTab {
	case TabPlayers:
		f := m.playerFilters
		if f.Search != "" {
			parts = append(parts, "search:"+f.Search)
		}
		if f.League != "" {
			parts = append(parts, "league:"+f.League)
		}
		if f.Status != "" {
			parts = append(parts, "status:"+f.Status)
		}
		if f.Rank != "" {
			parts = append(parts, "rank:"+f.Rank)
		}
	case TabMatches:
		f := m.matchFilters
		if f.Search != "" {
			parts = append(parts, "search:"+f.Search)
		}
		if f.Round != "" {
			parts = append(parts, "round:"+f.Round)
		}
		if f.Status != "" {
			parts = append(parts, "status:"+f.Status)
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return styles.WarningText.Render("⚲ " + strings.Join(parts, "  "))
}

// renderFooter draws the bottom bar: the search prompt when active,
// otherwise context-sensitive key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	if m.searchMode {
		return m.barLine(styles.Footer,
			m.searchInput.View(),
			styles.MutedText.Render("enter apply · esc cancel"))
	}

	hints := "/ search · f filter · F status · c clear · r refresh · T theme · h help · e quit"
	if m.activeTab == TabPlayers {
		hints = "/ search · f league · F status · R rank · c clear · r refresh · h help · e quit"
	} else if m.activeTab == TabSummary {
		hints = "tab switch · r refresh · T theme · h help · e quit"
	}
	return m.barLine(styles.Footer, styles.MutedText.Render(hints), "")
}

// barLine lays out left and right content in one full-width styled bar.
func (m Model) barLine(style lipgloss.Style, left, right string) string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return style.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
