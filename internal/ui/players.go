package ui

import (
	"fmt"
	"strings"

	"github.com/agpdev/cueview/internal/tournament"
)

// renderPlayers draws the standings table for the players tab, honoring the
// active filters.
func (m Model) renderPlayers() string {
	styles := m.theme.Styles()

	players := m.playerFilters.Apply(m.snapshot.Players)
	if len(players) == 0 {
		if m.playerFilters.Active() {
			return styles.MutedText.Render("No players match the current filters. Press c to clear.")
		}
		return styles.MutedText.Render("No players in this tournament yet.")
	}

	var b strings.Builder
	b.WriteString(styles.FaintText.Render(fmt.Sprintf(
		"%4s  %-3s %-24s %-14s %6s %6s %7s %5s  %s",
		"POS", "", "PLAYER", "LEAGUE", "PTS", "BASE", "FRAMES", "DIFF", "RANK")))
	b.WriteString("\n")

	for _, p := range players {
		rank := tournament.ClassifyRank(p)

		pos := fmt.Sprintf("%4d", p.Position)
		if p.Position <= 0 {
			pos = "   –"
		}

		name := truncate(p.Name, 24)
		nameCell := styles.Text.Render(fmt.Sprintf("%-24s", name))
		if p.Qualified {
			nameCell = styles.SuccessText.Render(fmt.Sprintf("%-24s", name))
		}

		diff := fmt.Sprintf("%+d", p.FrameDiff)
		diffCell := styles.MutedText.Render(fmt.Sprintf("%5s", diff))
		if p.FrameDiff > 0 {
			diffCell = styles.SuccessText.Render(fmt.Sprintf("%5s", diff))
		} else if p.FrameDiff < 0 {
			diffCell = styles.DangerText.Render(fmt.Sprintf("%5s", diff))
		}

		line := fmt.Sprintf("%s  %-3s %s %s %s %s %s %s  %s",
			styles.MutedText.Render(pos),
			rank.Crown(),
			nameCell,
			styles.MutedText.Render(fmt.Sprintf("%-14s", truncate(p.League, 14))),
			styles.AccentText.Render(fmt.Sprintf("%6d", p.TotalPoints)),
			styles.MutedText.Render(fmt.Sprintf("%6d", p.BasePoints)),
			styles.Text.Render(fmt.Sprintf("%3d-%-3d", p.FramesFor, p.FramesAgainst)),
			diffCell,
			styles.InfoText.Render(rank.Label()),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
