package tournament

// Rank buckets players by league points and position. Higher values are
// stronger players.
type Rank int

const (
	RankBeginner Rank = iota
	RankIntermediate
	RankAdvanced
	RankExpert
	RankElite
)

// Ranks lists all ranks from strongest to weakest, in display order.
var Ranks = []Rank{RankElite, RankExpert, RankAdvanced, RankIntermediate, RankBeginner}

// unrankedPosition stands in for players without a league position so the
// position thresholds never match.
const unrankedPosition = 999

// String returns the rank's filter value.
func (r Rank) String() string {
	switch r {
	case RankElite:
		return "elite"
	case RankExpert:
		return "expert"
	case RankAdvanced:
		return "advanced"
	case RankIntermediate:
		return "intermediate"
	}
	return "beginner"
}

// Label returns the rank's display label.
func (r Rank) Label() string {
	switch r {
	case RankElite:
		return "Elite"
	case RankExpert:
		return "Expert"
	case RankAdvanced:
		return "Advanced"
	case RankIntermediate:
		return "Intermediate"
	}
	return "Beginner"
}

// Crown returns the badge shown next to the rank label.
func (r Rank) Crown() string {
	switch r {
	case RankElite:
		return "👑"
	case RankExpert:
		return "🥇"
	case RankAdvanced:
		return "🥈"
	case RankIntermediate:
		return "🥉"
	}
	return "⭐"
}

// ClassifyRank derives a player's rank from total points and league
// position. Players without league data are beginners.
func ClassifyRank(p Player) Rank {
	if p.League == "" || p.TotalPoints == 0 {
		return RankBeginner
	}

	points := p.TotalPoints
	position := p.Position
	if position == 0 {
		position = unrankedPosition
	}

	switch {
	case points >= 120 && position <= 3:
		return RankElite
	case points >= 100 && position <= 8:
		return RankExpert
	case points >= 80 && position <= 15:
		return RankAdvanced
	case points >= 60 && position <= 25:
		return RankIntermediate
	}
	return RankBeginner
}
