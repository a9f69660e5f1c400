package postgres

import (
	"time"

	"github.com/totohockey/totohockey/internal/domain/user"
)

type profileTableModel struct {
	ID          int64     `db:"id"`
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type profileInsertModel struct {
	UserID      string `db:"user_id"`
	DisplayName string `db:"display_name"`
}

func profileFromRow(row profileTableModel) user.Profile {
	return user.Profile{
		UserID:      row.UserID,
		DisplayName: row.DisplayName,
	}
}
