package postgres

import (
	"time"

	"github.com/totohockey/totohockey/internal/domain/league"
)

type leagueTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	Name           string     `db:"name"`
	Description    string     `db:"description"`
	OwnerUserID    string     `db:"owner_user_id"`
	InviteCode     string     `db:"invite_code"`
	InviteIssuedAt *time.Time `db:"invite_issued_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

type leagueInsertModel struct {
	PublicID       string     `db:"public_id"`
	Name           string     `db:"name"`
	Description    string     `db:"description"`
	OwnerUserID    string     `db:"owner_user_id"`
	InviteCode     string     `db:"invite_code"`
	InviteIssuedAt *time.Time `db:"invite_issued_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

type leagueMemberInsertModel struct {
	LeagueID  string    `db:"league_public_id"`
	UserID    string    `db:"user_id"`
	JoinedAt  time.Time `db:"joined_at"`
	CreatedAt time.Time `db:"created_at"`
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:             row.PublicID,
		Name:           row.Name,
		Description:    row.Description,
		OwnerUserID:    row.OwnerUserID,
		InviteCode:     row.InviteCode,
		InviteIssuedAt: row.InviteIssuedAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
