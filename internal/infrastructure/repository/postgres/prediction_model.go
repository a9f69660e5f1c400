package postgres

import (
	"database/sql"
	"time"

	"github.com/totohockey/totohockey/internal/domain/prediction"
)

type predictionTableModel struct {
	ID        int64         `db:"id"`
	PublicID  string        `db:"public_id"`
	UserID    string        `db:"user_id"`
	MatchID   string        `db:"match_public_id"`
	HomeGoals int           `db:"home_goals"`
	AwayGoals int           `db:"away_goals"`
	Points    sql.NullInt64 `db:"points"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

type predictionInsertModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	MatchID   string    `db:"match_public_id"`
	HomeGoals int       `db:"home_goals"`
	AwayGoals int       `db:"away_goals"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func predictionFromRow(row predictionTableModel) prediction.Prediction {
	p := prediction.Prediction{
		ID:        row.PublicID,
		UserID:    row.UserID,
		MatchID:   row.MatchID,
		HomeGoals: row.HomeGoals,
		AwayGoals: row.AwayGoals,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Points.Valid {
		points := int(row.Points.Int64)
		p.Points = &points
	}
	return p
}
