package user

import "context"

const RoleAdmin = "admin"

// Principal is the authenticated caller as reported by the account service.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Profile carries the display data shown on leaderboards.
type Profile struct {
	UserID      string
	DisplayName string
}

type ProfileRepository interface {
	Upsert(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, userID string) (Profile, bool, error)
	ListByIDs(ctx context.Context, userIDs []string) ([]Profile, error)
	ListAll(ctx context.Context) ([]Profile, error)
}
