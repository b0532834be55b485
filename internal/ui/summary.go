package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agpdev/cueview/internal/tournament"
)

// leagueSummary aggregates standings for one league.
type leagueSummary struct {
	Name         string
	Players      int
	Qualified    int
	AvgPoints    float64
	BestPosition int // 0 when no player has a standings position
}

// overview holds the tournament-wide headline numbers.
type overview struct {
	Players   int
	Qualified int
	Matches   int
	Playing   int
	Finished  int
	Waiting   int
}

// summarizeLeagues aggregates per-league stats, largest league first with
// name as the tiebreak.
func summarizeLeagues(players []tournament.Player) []leagueSummary {
	byName := map[string]*leagueSummary{}
	points := map[string]int{}
	for _, p := range players {
		league := p.League
		if league == "" {
			league = "(no league)"
		}
		s, ok := byName[league]
		if !ok {
			s = &leagueSummary{Name: league}
			byName[league] = s
		}
		s.Players++
		if p.Qualified {
			s.Qualified++
		}
		points[league] += p.TotalPoints
		if p.Position > 0 && (s.BestPosition == 0 || p.Position < s.BestPosition) {
			s.BestPosition = p.Position
		}
	}

	out := make([]leagueSummary, 0, len(byName))
	for name, s := range byName {
		s.AvgPoints = float64(points[name]) / float64(s.Players)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Players != out[j].Players {
			return out[i].Players > out[j].Players
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// rankCounts tallies players per rank tier.
func rankCounts(players []tournament.Player) map[tournament.Rank]int {
	counts := map[tournament.Rank]int{}
	for _, p := range players {
		counts[tournament.ClassifyRank(p)]++
	}
	return counts
}

// topPlayers returns up to n players ordered by total points descending,
// breaking ties by standings position.
func topPlayers(players []tournament.Player, n int) []tournament.Player {
	sorted := make([]tournament.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return sorted[i].Position < sorted[j].Position
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// overviewStats computes the headline numbers for the summary tab.
func overviewStats(snap *tournament.Snapshot) overview {
	o := overview{
		Players: len(snap.Players),
		Matches: len(snap.Matches),
	}
	for _, p := range snap.Players {
		if p.Qualified {
			o.Qualified++
		}
	}
	for _, m := range snap.Matches {
		switch m.Status {
		case tournament.MatchPlaying:
			o.Playing++
		case tournament.MatchFinished:
			o.Finished++
		default:
			o.Waiting++
		}
	}
	return o
}

// renderSummary draws the summary tab: overview numbers, per-league stats,
// the rank distribution, and the top ten by points. Filters never apply here;
// the summary always reflects the whole snapshot.
func (m Model) renderSummary() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	var b strings.Builder

	o := overviewStats(snap)
	leagues := summarizeLeagues(snap.Players)
	b.WriteString(styles.AccentText.Bold(true).Render("═ Overview"))
	b.WriteString("\n")
	if snap.Venue != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			styles.MutedText.Render("Venue:"),
			styles.Text.Render(snap.Venue)))
	}
	if snap.Discipline != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			styles.MutedText.Render("Discipline:"),
			styles.Text.Render(snap.Discipline)))
	}
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s\n",
		styles.MutedText.Render("Players:"),
		styles.Text.Render(fmt.Sprintf("%d", o.Players)),
		styles.MutedText.Render("Qualified:"),
		styles.SuccessText.Render(fmt.Sprintf("%d", o.Qualified)),
		styles.MutedText.Render("Matches:"),
		styles.Text.Render(fmt.Sprintf("%d", o.Matches))))
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s\n",
		styles.MutedText.Render("Playing:"),
		styles.WarningText.Render(fmt.Sprintf("%d", o.Playing)),
		styles.MutedText.Render("Finished:"),
		styles.Text.Render(fmt.Sprintf("%d", o.Finished)),
		styles.MutedText.Render("Waiting:"),
		styles.Text.Render(fmt.Sprintf("%d", o.Waiting))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		styles.MutedText.Render("Leagues:"),
		styles.Text.Render(fmt.Sprintf("%d", len(leagues)))))

	if len(leagues) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render("═ Leagues"))
		b.WriteString("\n")
		for _, l := range leagues {
			best := "–"
			if l.BestPosition > 0 {
				best = fmt.Sprintf("#%d", l.BestPosition)
			}
			b.WriteString(fmt.Sprintf("  %s %s players, %s qualified, avg %s pts, best %s\n",
				styles.Text.Render(fmt.Sprintf("%-16s", truncate(l.Name, 16))),
				styles.MutedText.Render(fmt.Sprintf("%3d", l.Players)),
				styles.SuccessText.Render(fmt.Sprintf("%d", l.Qualified)),
				styles.AccentText.Render(fmt.Sprintf("%.1f", l.AvgPoints)),
				styles.InfoText.Render(best)))
		}
	}

	if len(snap.Players) > 0 {
		counts := rankCounts(snap.Players)
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render("═ Rank Distribution"))
		b.WriteString("\n")
		for _, r := range tournament.Ranks {
			count := counts[r]
			bar := strings.Repeat("▇", count)
			b.WriteString(fmt.Sprintf("  %s %-12s %s %s\n",
				r.Crown(),
				styles.Text.Render(r.Label()),
				styles.InfoText.Render(bar),
				styles.MutedText.Render(fmt.Sprintf("%d", count))))
		}
	}

	if top := topPlayers(snap.Players, 10); len(top) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render("═ Top 10 by Points"))
		b.WriteString("\n")
		for i, p := range top {
			b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
				styles.MutedText.Render(fmt.Sprintf("%2d.", i+1)),
				styles.Text.Render(fmt.Sprintf("%-24s", truncate(p.Name, 24))),
				styles.AccentText.Render(fmt.Sprintf("%5d pts", p.TotalPoints)),
				styles.MutedText.Render(truncate(p.League, 14))))
		}
	}

	return b.String()
}
