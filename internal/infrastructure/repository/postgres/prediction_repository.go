package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/totohockey/totohockey/internal/domain/prediction"
	qb "github.com/totohockey/totohockey/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Upsert writes the forecast, replacing goals and clearing points when the
// (user, match) row already exists.
func (r *PredictionRepository) Upsert(ctx context.Context, p prediction.Prediction) error {
	insertModel := predictionInsertModel{
		PublicID:  p.ID,
		UserID:    p.UserID,
		MatchID:   p.MatchID,
		HomeGoals: p.HomeGoals,
		AwayGoals: p.AwayGoals,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	query, args, err := qb.InsertModel("predictions", insertModel,
		"ON CONFLICT (user_id, match_public_id) DO UPDATE SET home_goals = EXCLUDED.home_goals, away_goals = EXCLUDED.away_goals, points = NULL, updated_at = EXCLUDED.updated_at")
	if err != nil {
		return fmt.Errorf("build upsert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction: %w", err)
	}

	return nil
}

func (r *PredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_public_id", matchID),
		).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction by user and match: %w", err)
	}

	return predictionFromRow(row), true, nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by user query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by match query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *PredictionRepository) ListByUsers(ctx context.Context, userIDs []string) ([]prediction.Prediction, error) {
	ids := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").From("predictions").
		Where(qb.In("user_id", ids)).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by users query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *PredictionRepository) ListScored(ctx context.Context) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(qb.NotNull("points")).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scored predictions query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *PredictionRepository) UpdatePoints(ctx context.Context, predictionID string, points int) error {
	query, args, err := qb.Update("predictions").
		Set("points", points).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", predictionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update prediction points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update prediction points: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update prediction points: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update prediction points: not found")
	}

	return nil
}

func (r *PredictionRepository) ResetAllPoints(ctx context.Context) error {
	query, args, err := qb.Update("predictions").
		SetExpr("points", "NULL").
		SetExpr("updated_at", "NOW()").
		Where(qb.NotNull("points")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset prediction points query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset all prediction points: %w", err)
	}

	return nil
}

func (r *PredictionRepository) list(ctx context.Context, query string, args []any) ([]prediction.Prediction, error) {
	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}
	return out, nil
}
