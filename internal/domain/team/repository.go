package team

import "context"

type Repository interface {
	Create(ctx context.Context, t Team) error
	Update(ctx context.Context, t Team) error
	Delete(ctx context.Context, teamID string) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListAll(ctx context.Context) ([]Team, error)
}
