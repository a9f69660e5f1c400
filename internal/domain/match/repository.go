package match

import "context"

type Repository interface {
	Create(ctx context.Context, m Match) error
	Update(ctx context.Context, m Match) error
	Delete(ctx context.Context, matchID string) error
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListByRound(ctx context.Context, roundID string) ([]Match, error)
	ListFinished(ctx context.Context) ([]Match, error)
	CountByRound(ctx context.Context, roundID string) (int, error)
}
