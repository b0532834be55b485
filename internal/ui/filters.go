package ui

import (
	"sort"
	"strings"

	"github.com/agpdev/cueview/internal/tournament"
)

// Qualification filter values for the players tab.
const (
	StatusQualified   = "qualified"
	StatusUnqualified = "unqualified"
)

// PlayerFilters holds the user's active filter and search criteria for the
// players tab. The zero value matches everything.
type PlayerFilters struct {
	Search string
	League string
	Status string // "", StatusQualified, StatusUnqualified
	Rank   string // "", or a tournament.Rank value
}

// Active reports whether any criterion is set.
func (f PlayerFilters) Active() bool {
	return f != PlayerFilters{}
}

// Apply returns the players matching every set criterion, preserving feed
// order.
func (f PlayerFilters) Apply(players []tournament.Player) []tournament.Player {
	out := make([]tournament.Player, 0, len(players))
	for _, p := range players {
		if !f.matches(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (f PlayerFilters) matches(p tournament.Player) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		name := strings.ToLower(p.Name)
		league := strings.ToLower(p.League)
		if !strings.Contains(name, term) && !strings.Contains(league, term) {
			return false
		}
	}
	if f.League != "" && p.League != f.League {
		return false
	}
	switch f.Status {
	case StatusQualified:
		if !p.Qualified {
			return false
		}
	case StatusUnqualified:
		if p.Qualified {
			return false
		}
	}
	if f.Rank != "" && tournament.ClassifyRank(p).String() != f.Rank {
		return false
	}
	return true
}

// MatchFilters holds the user's active filter and search criteria for the
// matches tab. The zero value matches everything.
type MatchFilters struct {
	Search string
	Round  string
	Status string // "", or a match status value
}

// Active reports whether any criterion is set.
func (f MatchFilters) Active() bool {
	return f != MatchFilters{}
}

// Apply returns the matches matching every set criterion, preserving feed
// order.
func (f MatchFilters) Apply(matches []tournament.Match) []tournament.Match {
	out := make([]tournament.Match, 0, len(matches))
	for _, m := range matches {
		if !f.matchesMatch(m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (f MatchFilters) matchesMatch(m tournament.Match) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.PlayerA.Name), term) &&
			!strings.Contains(strings.ToLower(m.PlayerB.Name), term) &&
			!strings.Contains(strings.ToLower(m.RoundName), term) {
			return false
		}
	}
	if f.Round != "" && m.RoundName != f.Round {
		return false
	}
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	return true
}

// leagueOptions returns the distinct leagues present in the snapshot,
// sorted for a stable cycle order.
func leagueOptions(players []tournament.Player) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range players {
		if p.League == "" {
			continue
		}
		if _, ok := seen[p.League]; ok {
			continue
		}
		seen[p.League] = struct{}{}
		out = append(out, p.League)
	}
	sort.Strings(out)
	return out
}

// roundOptions returns the distinct round names present in the snapshot,
// sorted for a stable cycle order.
func roundOptions(matches []tournament.Match) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, m := range matches {
		if m.RoundName == "" {
			continue
		}
		if _, ok := seen[m.RoundName]; ok {
			continue
		}
		seen[m.RoundName] = struct{}{}
		out = append(out, m.RoundName)
	}
	sort.Strings(out)
	return out
}

// rankOptions lists the rank filter values, strongest first.
func rankOptions() []string {
	out := make([]string, 0, len(tournament.Ranks))
	for _, r := range tournament.Ranks {
		out = append(out, r.String())
	}
	return out
}

// cycleOption advances current through options, starting and ending at the
// empty (match everything) value.
func cycleOption(current string, options []string) string {
	if len(options) == 0 {
		return ""
	}
	if current == "" {
		return options[0]
	}
	for i, opt := range options {
		if opt == current {
			if i == len(options)-1 {
				return ""
			}
			return options[i+1]
		}
	}
	return ""
}
