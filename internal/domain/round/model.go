package round

import "time"

// Round groups matches under one prediction deadline. Predictions for any
// match in the round lock at DeadlineAt.
type Round struct {
	ID         string
	Label      string
	DeadlineAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r Round) DeadlinePassed(now time.Time) bool {
	return !now.Before(r.DeadlineAt)
}
