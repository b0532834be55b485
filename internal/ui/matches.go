package ui

import (
	"fmt"
	"strings"

	"github.com/agpdev/cueview/internal/tournament"
)

// renderMatches draws the bracket for the matches tab, grouped by round in
// order of first appearance in the feed.
func (m Model) renderMatches() string {
	styles := m.theme.Styles()

	matches := m.matchFilters.Apply(m.snapshot.Matches)
	if len(matches) == 0 {
		if m.matchFilters.Active() {
			return styles.MutedText.Render("No matches match the current filters. Press c to clear.")
		}
		return styles.MutedText.Render("No matches scheduled yet.")
	}

	var b strings.Builder
	var currentRound string
	first := true
	for _, match := range matches {
		if match.RoundName != currentRound {
			currentRound = match.RoundName
			if !first {
				b.WriteString("\n")
			}
			b.WriteString(styles.AccentText.Bold(true).Render("═ " + currentRound))
			b.WriteString("\n")
		}
		first = false
		b.WriteString(m.renderMatchRow(match))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMatchRow(match tournament.Match) string {
	styles := m.theme.Styles()

	badge := styles.StatusStyle(match.Status).Render(tournament.StatusLabel(match.Status))

	score := fmt.Sprintf("%d : %d", match.ScoreA, match.ScoreB)
	scoreCell := styles.Text.Bold(true).Render(fmt.Sprintf("%7s", score))
	if match.Status == tournament.MatchWaiting {
		scoreCell = styles.FaintText.Render(fmt.Sprintf("%7s", "– : –"))
	}

	nameA := fmt.Sprintf("%22s", truncate(match.PlayerA.Name, 22))
	nameB := fmt.Sprintf("%-22s", truncate(match.PlayerB.Name, 22))
	sideA := styles.Text.Render(nameA)
	sideB := styles.Text.Render(nameB)
	if match.Status == tournament.MatchFinished {
		switch {
		case match.ScoreA > match.ScoreB:
			sideA = styles.SuccessText.Render(nameA)
			sideB = styles.MutedText.Render(nameB)
		case match.ScoreB > match.ScoreA:
			sideA = styles.MutedText.Render(nameA)
			sideB = styles.SuccessText.Render(nameB)
		}
	}

	detail := fmt.Sprintf("race to %d", match.RaceTo)
	if match.Discipline != "" {
		detail = match.Discipline + " · " + detail
	}

	return fmt.Sprintf("  %s #%-3d %s %s %s  %s  %s",
		styles.MutedText.Render("M"),
		match.Number,
		sideA,
		scoreCell,
		sideB,
		badge,
		styles.FaintText.Render(detail),
	)
}
