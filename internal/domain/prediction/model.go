package prediction

import "time"

// Prediction is a user's forecast for one match. One row per (user, match),
// saves are upserts. Points stays nil until the match result is scored.
type Prediction struct {
	ID        string
	UserID    string
	MatchID   string
	HomeGoals int
	AwayGoals int
	Points    *int
	CreatedAt time.Time
	UpdatedAt time.Time
}
