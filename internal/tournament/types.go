package tournament

import (
	"fmt"
	"time"
)

const feedTimestampLayout = "2006-01-02 15:04:05"

// Match status values used by the feed.
const (
	MatchWaiting  = "waiting"
	MatchPlaying  = "playing"
	MatchFinished = "finished"
)

// Snapshot mirrors the tournament feed document. It is replaced wholesale on
// every refresh and must never be mutated after decoding; every consumer
// receives the same read-only instance.
type Snapshot struct {
	Name        string   `json:"name"`
	Venue       string   `json:"venue"`
	Discipline  string   `json:"discipline"`
	Players     []Player `json:"players"`
	Matches     []Match  `json:"matches"`
	LastUpdated string   `json:"last_updated"`
	StartDate   string   `json:"tournament_start_date"`
	EndDate     string   `json:"tournament_end_date"`
}

// Player describes one tournament entrant together with their league
// standing data.
type Player struct {
	Name          string `json:"name"`
	League        string `json:"league"`
	Position      int    `json:"position"`
	TotalPoints   int    `json:"total_points"`
	BasePoints    int    `json:"base_points"`
	FramesFor     int    `json:"frames_for"`
	FramesAgainst int    `json:"frames_against"`
	FrameDiff     int    `json:"frame_diff"`
	Qualified     bool   `json:"qualified"`
	EventsPlayed  int    `json:"events_played"`
}

// MatchSide is one participant of a match, with league info when the player
// appears in the standings.
type MatchSide struct {
	Name     string `json:"name"`
	League   string `json:"league,omitempty"`
	Position int    `json:"position,omitempty"`
}

// Match describes a single bracket match.
type Match struct {
	RoundName  string    `json:"roundName"`
	Number     int       `json:"matchNo"`
	PlayerA    MatchSide `json:"playerA"`
	PlayerB    MatchSide `json:"playerB"`
	ScoreA     int       `json:"scoreA"`
	ScoreB     int       `json:"scoreB"`
	RaceTo     int       `json:"raceTo"`
	Discipline string    `json:"discipline"`
	Status     string    `json:"status"`
}

// UpdatedAt returns the document's last_updated field as time.Time when possible.
func (s *Snapshot) UpdatedAt() time.Time {
	return parseTime(s.LastUpdated)
}

// StartAt returns the tournament start instant, or the zero time when the
// feed carries no start date.
func (s *Snapshot) StartAt() time.Time {
	return parseTime(s.StartDate)
}

// EndAt returns the tournament end instant, or the zero time when the feed
// carries no end date.
func (s *Snapshot) EndAt() time.Time {
	return parseTime(s.EndDate)
}

// Validate rejects documents that decoded cleanly but cannot possibly be a
// tournament snapshot. A failed validation must leave the previously stored
// snapshot in place.
func (s *Snapshot) Validate() error {
	if len(s.Players) == 0 && len(s.Matches) == 0 {
		return fmt.Errorf("document has no players and no matches")
	}
	return nil
}

// StatusLabel maps a match status value to its display label.
func StatusLabel(status string) string {
	switch status {
	case MatchFinished:
		return "Finished"
	case MatchWaiting:
		return "Waiting"
	case MatchPlaying:
		return "Playing"
	}
	return status
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		feedTimestampLayout,
		"2006-01-02",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
