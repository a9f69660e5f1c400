package round

import "context"

type Repository interface {
	Create(ctx context.Context, r Round) error
	Update(ctx context.Context, r Round) error
	Delete(ctx context.Context, roundID string) error
	GetByID(ctx context.Context, roundID string) (Round, bool, error)
	ListAll(ctx context.Context) ([]Round, error)
}
