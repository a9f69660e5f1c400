// Package httpapi exposes the prediction league over HTTP. Responses use a
// Google-style JSON envelope; errors carry a machine-readable reason next to
// the human message.
package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/totohockey/totohockey/internal/domain/league"
	"github.com/totohockey/totohockey/internal/domain/match"
	"github.com/totohockey/totohockey/internal/domain/prediction"
	"github.com/totohockey/totohockey/internal/domain/round"
	"github.com/totohockey/totohockey/internal/domain/team"
	"github.com/totohockey/totohockey/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	predictions  *usecase.PredictionService
	competitions *usecase.CompetitionService
	leagues      *usecase.LeagueService
	leaderboards *usecase.LeaderboardService
	scoring      *usecase.ScoringService
	logger       *slog.Logger
	validate     *validator.Validate
}

func NewHandler(
	predictions *usecase.PredictionService,
	competitions *usecase.CompetitionService,
	leagues *usecase.LeagueService,
	leaderboards *usecase.LeaderboardService,
	scoring *usecase.ScoringService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		predictions:  predictions,
		competitions: competitions,
		leagues:      leagues,
		leaderboards: leaderboards,
		scoring:      scoring,
		logger:       logger,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody reads and validates a JSON request body into dst. Malformed
// JSON and failed validation both surface as invalid input.
func (h *Handler) decodeBody(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)
	defer body.Close()

	if err := sonic.ConfigDefault.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", usecase.ErrInvalidInput)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	Country   string `json:"country,omitempty"`
}

func toTeamDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:        t.ID,
		Name:      t.Name,
		ShortName: t.ShortName,
		Country:   t.Country,
	}
}

func toTeamDTOs(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, t := range items {
		out = append(out, toTeamDTO(t))
	}
	return out
}

type roundDTO struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	DeadlineAt time.Time `json:"deadline_at"`
}

func toRoundDTO(r round.Round) roundDTO {
	return roundDTO{
		ID:         r.ID,
		Label:      r.Label,
		DeadlineAt: r.DeadlineAt,
	}
}

func toRoundDTOs(items []round.Round) []roundDTO {
	out := make([]roundDTO, 0, len(items))
	for _, r := range items {
		out = append(out, toRoundDTO(r))
	}
	return out
}

type matchDTO struct {
	ID          string    `json:"id"`
	RoundID     string    `json:"round_id"`
	HomeTeamID  string    `json:"home_team_id"`
	AwayTeamID  string    `json:"away_team_id"`
	Competition string    `json:"competition,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	HomeScore   *int      `json:"home_score,omitempty"`
	AwayScore   *int      `json:"away_score,omitempty"`
	Finished    bool      `json:"finished"`
}

func toMatchDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:          m.ID,
		RoundID:     m.RoundID,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		Competition: m.Competition,
		StartsAt:    m.StartsAt,
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		Finished:    m.HasResult(),
	}
}

func toMatchDTOs(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, toMatchDTO(m))
	}
	return out
}

type predictionDTO struct {
	ID        string `json:"id"`
	MatchID   string `json:"match_id"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
	Points    *int   `json:"points,omitempty"`
}

func toPredictionDTO(p prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:        p.ID,
		MatchID:   p.MatchID,
		HomeGoals: p.HomeGoals,
		AwayGoals: p.AwayGoals,
		Points:    p.Points,
	}
}

func toPredictionDTOs(items []prediction.Prediction) []predictionDTO {
	out := make([]predictionDTO, 0, len(items))
	for _, p := range items {
		out = append(out, toPredictionDTO(p))
	}
	return out
}

type matchPredictionDTO struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	HomeGoals   int    `json:"home_goals"`
	AwayGoals   int    `json:"away_goals"`
	Points      *int   `json:"points,omitempty"`
}

func toMatchPredictionDTOs(items []usecase.MatchPrediction) []matchPredictionDTO {
	out := make([]matchPredictionDTO, 0, len(items))
	for _, p := range items {
		out = append(out, matchPredictionDTO{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			HomeGoals:   p.HomeGoals,
			AwayGoals:   p.AwayGoals,
			Points:      p.Points,
		})
	}
	return out
}

type leagueDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	OwnerUserID string `json:"owner_user_id,omitempty"`
	IsPublic    bool   `json:"is_public"`
	IsOwner     bool   `json:"is_owner"`
}

func toLeagueDTO(l league.League, viewerID string) leagueDTO {
	return leagueDTO{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		OwnerUserID: l.OwnerUserID,
		IsPublic:    l.IsPublic,
		IsOwner:     l.OwnerUserID != "" && l.OwnerUserID == viewerID,
	}
}

func toLeagueDTOs(items []league.League, viewerID string) []leagueDTO {
	out := make([]leagueDTO, 0, len(items))
	for _, l := range items {
		out = append(out, toLeagueDTO(l, viewerID))
	}
	return out
}

type inviteStatusDTO struct {
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
	Expired  bool      `json:"expired"`
	Hours    int       `json:"hours"`
	Minutes  int       `json:"minutes"`
	Seconds  int       `json:"seconds"`
}

func toInviteStatusDTO(s usecase.InviteStatus) inviteStatusDTO {
	return inviteStatusDTO{
		Code:     s.Code,
		IssuedAt: s.IssuedAt,
		Expired:  s.Expired,
		Hours:    s.Hours,
		Minutes:  s.Minutes,
		Seconds:  s.Seconds,
	}
}
