package postgres

import (
	"time"

	"github.com/totohockey/totohockey/internal/domain/round"
)

type roundTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	Label      string    `db:"label"`
	DeadlineAt time.Time `db:"deadline_at"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type roundInsertModel struct {
	PublicID   string    `db:"public_id"`
	Label      string    `db:"label"`
	DeadlineAt time.Time `db:"deadline_at"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func roundFromRow(row roundTableModel) round.Round {
	return round.Round{
		ID:         row.PublicID,
		Label:      row.Label,
		DeadlineAt: row.DeadlineAt,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
