package postgres

import (
	"database/sql"
	"time"

	"github.com/totohockey/totohockey/internal/domain/match"
)

type matchTableModel struct {
	ID          int64         `db:"id"`
	PublicID    string        `db:"public_id"`
	RoundID     string        `db:"round_public_id"`
	HomeTeamID  string        `db:"home_team_public_id"`
	AwayTeamID  string        `db:"away_team_public_id"`
	Competition string        `db:"competition"`
	StartsAt    time.Time     `db:"starts_at"`
	HomeScore   sql.NullInt64 `db:"home_score"`
	AwayScore   sql.NullInt64 `db:"away_score"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

type matchInsertModel struct {
	PublicID    string    `db:"public_id"`
	RoundID     string    `db:"round_public_id"`
	HomeTeamID  string    `db:"home_team_public_id"`
	AwayTeamID  string    `db:"away_team_public_id"`
	Competition string    `db:"competition"`
	StartsAt    time.Time `db:"starts_at"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func matchFromRow(row matchTableModel) match.Match {
	m := match.Match{
		ID:          row.PublicID,
		RoundID:     row.RoundID,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		Competition: row.Competition,
		StartsAt:    row.StartsAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.HomeScore.Valid && row.AwayScore.Valid {
		home := int(row.HomeScore.Int64)
		away := int(row.AwayScore.Int64)
		m.HomeScore = &home
		m.AwayScore = &away
	}
	return m
}
