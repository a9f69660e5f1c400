package prediction

import "context"

type Repository interface {
	Upsert(ctx context.Context, p Prediction) error
	GetByUserAndMatch(ctx context.Context, userID, matchID string) (Prediction, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Prediction, error)
	ListByMatch(ctx context.Context, matchID string) ([]Prediction, error)
	ListByUsers(ctx context.Context, userIDs []string) ([]Prediction, error)
	ListScored(ctx context.Context) ([]Prediction, error)
	UpdatePoints(ctx context.Context, predictionID string, points int) error
	ResetAllPoints(ctx context.Context) error
}
