package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/totohockey/totohockey/internal/domain/match"
	"github.com/totohockey/totohockey/internal/domain/round"
	"github.com/totohockey/totohockey/internal/domain/team"
	idgen "github.com/totohockey/totohockey/internal/platform/id"
)

type CreateTeamInput struct {
	Name      string
	ShortName string
	Country   string
}

type CreateRoundInput struct {
	Label      string
	DeadlineAt time.Time
}

type CreateMatchInput struct {
	RoundID     string
	HomeTeamID  string
	AwayTeamID  string
	Competition string
	StartsAt    time.Time
}

type RecordResultInput struct {
	MatchID   string
	HomeScore int
	AwayScore int
}

type matchRecalculator interface {
	RecalculateMatch(ctx context.Context, matchID string) (BatchResult, error)
}

// CompetitionService manages the fixture catalogue: teams, rounds, and
// matches, plus result recording which triggers the per-match recompute.
type CompetitionService struct {
	teamRepo  team.Repository
	roundRepo round.Repository
	matchRepo match.Repository
	recalc    matchRecalculator
	idGen     idgen.Generator
	now       func() time.Time
}

func NewCompetitionService(
	teamRepo team.Repository,
	roundRepo round.Repository,
	matchRepo match.Repository,
	recalc matchRecalculator,
	idGen idgen.Generator,
) *CompetitionService {
	return &CompetitionService{
		teamRepo:  teamRepo,
		roundRepo: roundRepo,
		matchRepo: matchRepo,
		recalc:    recalc,
		idGen:     idGen,
		now:       time.Now,
	}
}

func (s *CompetitionService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.CreateTeam")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.ShortName = strings.TrimSpace(input.ShortName)
	input.Country = strings.TrimSpace(input.Country)
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	t := team.Team{
		ID:        teamID,
		Name:      input.Name,
		ShortName: input.ShortName,
		Country:   input.Country,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return t, nil
}

func (s *CompetitionService) UpdateTeam(ctx context.Context, teamID string, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.UpdateTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	input.Name = strings.TrimSpace(input.Name)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	t.Name = input.Name
	t.ShortName = strings.TrimSpace(input.ShortName)
	t.Country = strings.TrimSpace(input.Country)
	t.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.Update(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	return t, nil
}

func (s *CompetitionService) DeleteTeam(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.DeleteTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func (s *CompetitionService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *CompetitionService) CreateRound(ctx context.Context, input CreateRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.CreateRound")
	defer span.End()

	input.Label = strings.TrimSpace(input.Label)
	if input.Label == "" {
		return round.Round{}, fmt.Errorf("%w: round label is required", ErrInvalidInput)
	}
	if input.DeadlineAt.IsZero() {
		return round.Round{}, fmt.Errorf("%w: round deadline is required", ErrInvalidInput)
	}

	roundID, err := s.idGen.NewID()
	if err != nil {
		return round.Round{}, fmt.Errorf("generate round id: %w", err)
	}

	now := s.now().UTC()
	r := round.Round{
		ID:         roundID,
		Label:      input.Label,
		DeadlineAt: input.DeadlineAt.UTC(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.roundRepo.Create(ctx, r); err != nil {
		return round.Round{}, fmt.Errorf("create round: %w", err)
	}

	return r, nil
}

func (s *CompetitionService) UpdateRound(ctx context.Context, roundID string, input CreateRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.UpdateRound")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	input.Label = strings.TrimSpace(input.Label)
	if roundID == "" {
		return round.Round{}, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}
	if input.Label == "" {
		return round.Round{}, fmt.Errorf("%w: round label is required", ErrInvalidInput)
	}
	if input.DeadlineAt.IsZero() {
		return round.Round{}, fmt.Errorf("%w: round deadline is required", ErrInvalidInput)
	}

	r, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}

	r.Label = input.Label
	r.DeadlineAt = input.DeadlineAt.UTC()
	r.UpdatedAt = s.now().UTC()
	if err := s.roundRepo.Update(ctx, r); err != nil {
		return round.Round{}, fmt.Errorf("update round: %w", err)
	}

	return r, nil
}

// DeleteRound refuses to remove a round that still owns matches.
func (s *CompetitionService) DeleteRound(ctx context.Context, roundID string) error {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.DeleteRound")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	_, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}

	count, err := s.matchRepo.CountByRound(ctx, roundID)
	if err != nil {
		return fmt.Errorf("count matches in round: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: round still has %d matches", ErrInvalidInput, count)
	}

	if err := s.roundRepo.Delete(ctx, roundID); err != nil {
		return fmt.Errorf("delete round: %w", err)
	}
	return nil
}

func (s *CompetitionService) ListRounds(ctx context.Context) ([]round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.ListRounds")
	defer span.End()

	items, err := s.roundRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return items, nil
}

func (s *CompetitionService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.CreateMatch")
	defer span.End()

	input.RoundID = strings.TrimSpace(input.RoundID)
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)
	input.Competition = strings.TrimSpace(input.Competition)
	if input.RoundID == "" {
		return match.Match{}, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}
	if input.HomeTeamID == "" || input.AwayTeamID == "" {
		return match.Match{}, fmt.Errorf("%w: home and away team ids are required", ErrInvalidInput)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return match.Match{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}

	if _, exists, err := s.roundRepo.GetByID(ctx, input.RoundID); err != nil {
		return match.Match{}, fmt.Errorf("get round: %w", err)
	} else if !exists {
		return match.Match{}, fmt.Errorf("%w: round=%s", ErrNotFound, input.RoundID)
	}
	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		if _, exists, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return match.Match{}, fmt.Errorf("get team: %w", err)
		} else if !exists {
			return match.Match{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	m := match.Match{
		ID:          matchID,
		RoundID:     input.RoundID,
		HomeTeamID:  input.HomeTeamID,
		AwayTeamID:  input.AwayTeamID,
		Competition: input.Competition,
		StartsAt:    input.StartsAt.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	return m, nil
}

func (s *CompetitionService) DeleteMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.DeleteMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

func (s *CompetitionService) ListMatchesByRound(ctx context.Context, roundID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.ListMatchesByRound")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return nil, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	if _, exists, err := s.roundRepo.GetByID(ctx, roundID); err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}

	items, err := s.matchRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list matches by round: %w", err)
	}
	return items, nil
}

// RecordResult stores the final score and rescores the match's predictions.
func (s *CompetitionService) RecordResult(ctx context.Context, input RecordResultInput) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.RecordResult")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.MatchID == "" {
		return BatchResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return BatchResult{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return BatchResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}

	if err := m.SetResult(input.HomeScore, input.AwayScore); err != nil {
		return BatchResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	m.UpdatedAt = s.now().UTC()

	if err := s.matchRepo.Update(ctx, m); err != nil {
		return BatchResult{}, fmt.Errorf("update match result: %w", err)
	}

	if s.recalc == nil {
		return BatchResult{}, nil
	}
	result, err := s.recalc.RecalculateMatch(ctx, input.MatchID)
	if err != nil {
		return BatchResult{}, fmt.Errorf("rescore match predictions: %w", err)
	}
	return result, nil
}
