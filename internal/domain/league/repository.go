package league

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l League) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByInviteCode(ctx context.Context, code string) (League, bool, error)
	ListByMember(ctx context.Context, userID string) ([]League, error)
	UpdateInvite(ctx context.Context, leagueID, code string, issuedAt time.Time) error
	AddMember(ctx context.Context, m Membership) error
	IsMember(ctx context.Context, leagueID, userID string) (bool, error)
	ListMemberIDs(ctx context.Context, leagueID string) ([]string, error)
}
