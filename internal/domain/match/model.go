package match

import (
	"fmt"
	"time"
)

// Match is a fixture between two teams. HomeScore and AwayScore stay nil
// until the final result is recorded.
type Match struct {
	ID          string
	RoundID     string
	HomeTeamID  string
	AwayTeamID  string
	Competition string
	StartsAt    time.Time
	HomeScore   *int
	AwayScore   *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m Match) HasResult() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// SetResult records the final score. Scores must be non-negative.
func (m *Match) SetResult(homeScore, awayScore int) error {
	if homeScore < 0 || awayScore < 0 {
		return fmt.Errorf("scores must be non-negative, got %d-%d", homeScore, awayScore)
	}
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	return nil
}
