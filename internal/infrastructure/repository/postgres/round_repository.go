package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/totohockey/totohockey/internal/domain/round"
	qb "github.com/totohockey/totohockey/internal/platform/querybuilder"
)

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) Create(ctx context.Context, rd round.Round) error {
	insertModel := roundInsertModel{
		PublicID:   rd.ID,
		Label:      rd.Label,
		DeadlineAt: rd.DeadlineAt,
		CreatedAt:  rd.CreatedAt,
		UpdatedAt:  rd.UpdatedAt,
	}
	query, args, err := qb.InsertModel("rounds", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create round query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create round: %w", err)
	}

	return nil
}

func (r *RoundRepository) Update(ctx context.Context, rd round.Round) error {
	query, args, err := qb.Update("rounds").
		Set("label", rd.Label).
		Set("deadline_at", rd.DeadlineAt).
		Set("updated_at", rd.UpdatedAt).
		Where(qb.Eq("public_id", rd.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update round query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update round: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update round: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update round: not found")
	}

	return nil
}

func (r *RoundRepository) Delete(ctx context.Context, roundID string) error {
	query, args, err := qb.DeleteFrom("rounds").
		Where(qb.Eq("public_id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete round query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete round: %w", err)
	}

	return nil
}

func (r *RoundRepository) GetByID(ctx context.Context, roundID string) (round.Round, bool, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(qb.Eq("public_id", roundID)).
		ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build get round by id query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round by id: %w", err)
	}

	return roundFromRow(row), true, nil
}

func (r *RoundRepository) ListAll(ctx context.Context) ([]round.Round, error) {
	query, args, err := qb.Select("*").From("rounds").
		OrderBy("deadline_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromRow(row))
	}
	return out, nil
}
