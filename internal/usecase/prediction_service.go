package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/totohockey/totohockey/internal/domain/league"
	"github.com/totohockey/totohockey/internal/domain/match"
	"github.com/totohockey/totohockey/internal/domain/prediction"
	"github.com/totohockey/totohockey/internal/domain/round"
	"github.com/totohockey/totohockey/internal/domain/user"
	idgen "github.com/totohockey/totohockey/internal/platform/id"
)

type SavePredictionInput struct {
	UserID    string
	MatchID   string
	HomeGoals int
	AwayGoals int
}

// MatchPrediction is one member's forecast as revealed on a league's match
// detail page after the round deadline.
type MatchPrediction struct {
	UserID      string
	DisplayName string
	HomeGoals   int
	AwayGoals   int
	Points      *int
}

type PredictionService struct {
	predictionRepo prediction.Repository
	matchRepo      match.Repository
	roundRepo      round.Repository
	leagueRepo     league.Repository
	profileRepo    user.ProfileRepository
	idGen          idgen.Generator
	now            func() time.Time
}

func NewPredictionService(
	predictionRepo prediction.Repository,
	matchRepo match.Repository,
	roundRepo round.Repository,
	leagueRepo league.Repository,
	profileRepo user.ProfileRepository,
	idGen idgen.Generator,
) *PredictionService {
	return &PredictionService{
		predictionRepo: predictionRepo,
		matchRepo:      matchRepo,
		roundRepo:      roundRepo,
		leagueRepo:     leagueRepo,
		profileRepo:    profileRepo,
		idGen:          idGen,
		now:            time.Now,
	}
}

// Save upserts the caller's forecast for a match. Saves lock once the
// round deadline passes or the result is in.
func (s *PredictionService) Save(ctx context.Context, input SavePredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.Save")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.UserID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: predicted goals must be non-negative", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get match for prediction: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	if m.HasResult() {
		return prediction.Prediction{}, fmt.Errorf("%w: match result already recorded", ErrInvalidInput)
	}

	r, exists, err := s.roundRepo.GetByID(ctx, m.RoundID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get round for prediction: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: round=%s", ErrNotFound, m.RoundID)
	}

	now := s.now().UTC()
	if r.DeadlinePassed(now) {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction deadline has passed", ErrInvalidInput)
	}

	p := prediction.Prediction{
		UserID:    input.UserID,
		MatchID:   input.MatchID,
		HomeGoals: input.HomeGoals,
		AwayGoals: input.AwayGoals,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, exists, err := s.predictionRepo.GetByUserAndMatch(ctx, input.UserID, input.MatchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get existing prediction: %w", err)
	}
	if exists {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID, err = s.idGen.NewID()
		if err != nil {
			return prediction.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
		}
	}

	if err := s.predictionRepo.Upsert(ctx, p); err != nil {
		return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
	}

	return p, nil
}

func (s *PredictionService) ListMine(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.ListMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list predictions by user: %w", err)
	}

	return items, nil
}

func (s *PredictionService) GetMine(ctx context.Context, userID, matchID string) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.GetMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	matchID = strings.TrimSpace(matchID)
	if userID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if matchID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	p, exists, err := s.predictionRepo.GetByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get prediction by user and match: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction for match=%s", ErrNotFound, matchID)
	}

	return p, nil
}

// LeagueMatchPredictions reveals what a league's members predicted for one
// match. Only members may look, and never before the round deadline.
func (s *PredictionService) LeagueMatchPredictions(ctx context.Context, userID, leagueID, matchID string) ([]MatchPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.LeagueMatchPredictions")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	matchID = strings.TrimSpace(matchID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	memberIDs, err := s.leagueMembers(ctx, userID, leagueID)
	if err != nil {
		return nil, err
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	r, exists, err := s.roundRepo.GetByID(ctx, m.RoundID)
	if err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: round=%s", ErrNotFound, m.RoundID)
	}
	if !r.DeadlinePassed(s.now().UTC()) {
		return nil, fmt.Errorf("%w: predictions are hidden until the round deadline", ErrUnauthorized)
	}

	items, err := s.predictionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list predictions by match: %w", err)
	}

	inLeague := func(id string) bool { return true }
	if memberIDs != nil {
		members := make(map[string]struct{}, len(memberIDs))
		for _, id := range memberIDs {
			members[id] = struct{}{}
		}
		inLeague = func(id string) bool {
			_, ok := members[id]
			return ok
		}
	}

	userIDs := make([]string, 0, len(items))
	for _, p := range items {
		if inLeague(p.UserID) {
			userIDs = append(userIDs, p.UserID)
		}
	}
	names, err := s.displayNames(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]MatchPrediction, 0, len(items))
	for _, p := range items {
		if !inLeague(p.UserID) {
			continue
		}
		out = append(out, MatchPrediction{
			UserID:      p.UserID,
			DisplayName: names[p.UserID],
			HomeGoals:   p.HomeGoals,
			AwayGoals:   p.AwayGoals,
			Points:      p.Points,
		})
	}

	return out, nil
}

// leagueMembers gates access and returns the member set, or nil for the
// public league where everyone belongs.
func (s *PredictionService) leagueMembers(ctx context.Context, userID, leagueID string) ([]string, error) {
	if leagueID == league.PublicLeagueID {
		return nil, nil
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	isMember, err := s.leagueRepo.IsMember(ctx, leagueID, userID)
	if err != nil {
		return nil, fmt.Errorf("check league member: %w", err)
	}
	if !isMember {
		return nil, fmt.Errorf("%w: you are not a member of this league", ErrUnauthorized)
	}

	memberIDs, err := s.leagueRepo.ListMemberIDs(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}
	return memberIDs, nil
}

func (s *PredictionService) displayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 || s.profileRepo == nil {
		return names, nil
	}

	profiles, err := s.profileRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	for _, p := range profiles {
		names[p.UserID] = p.DisplayName
	}
	return names, nil
}
