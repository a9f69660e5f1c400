package league

import "time"

// PublicLeagueID identifies the synthetic league every user belongs to. It
// is never persisted and has no invite code.
const PublicLeagueID = "public"

type League struct {
	ID             string
	Name           string
	Description    string
	OwnerUserID    string
	IsPublic       bool
	InviteCode     string
	InviteIssuedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Membership struct {
	LeagueID  string
	UserID    string
	JoinedAt  time.Time
	CreatedAt time.Time
}

func PublicLeague() League {
	return League{
		ID:       PublicLeagueID,
		Name:     "TotoHockey",
		IsPublic: true,
	}
}
