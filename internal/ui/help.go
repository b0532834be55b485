package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp draws the full-screen key reference. Any key dismisses it.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	section := func(title string, rows [][2]string) string {
		var b strings.Builder
		b.WriteString(styles.AccentText.Bold(true).Render(title))
		b.WriteString("\n")
		for _, row := range rows {
			b.WriteString("  ")
			b.WriteString(styles.WarningText.Render(padRight(row[0], 12)))
			b.WriteString(styles.Text.Render(row[1]))
			b.WriteString("\n")
		}
		return b.String()
	}

	body := strings.Join([]string{
		section("Tabs", [][2]string{
			{"1 / p", "Players"},
			{"2 / m", "Matches"},
			{"3 / s", "Summary"},
			{"tab", "next tab"},
			{"shift+tab", "previous tab"},
		}),
		section("Filtering", [][2]string{
			{"/", "search (live; enter applies, esc reverts)"},
			{"f", "cycle league (players) / round (matches)"},
			{"F", "cycle status filter"},
			{"R", "cycle rank filter (players)"},
			{"c", "clear filters on the active tab"},
		}),
		section("Data", [][2]string{
			{"r", "refresh now (rate limited)"},
		}),
		section("Scrolling", [][2]string{
			{"j / k", "line down / up"},
			{"ctrl+d / u", "half page down / up"},
			{"g / G", "top / bottom"},
		}),
		section("Other", [][2]string{
			{"T", "cycle theme"},
			{"h / ?", "toggle this help"},
			{"e / ctrl+c", "quit"},
		}),
	}, "\n")

	title := styles.Logo.Render("cueview") + styles.MutedText.Render("  key reference")
	content := title + "\n\n" + body + "\n" + styles.MutedText.Render("press any key to close")

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
