package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/totohockey/totohockey/internal/domain/league"
	"github.com/totohockey/totohockey/internal/domain/prediction"
	"github.com/totohockey/totohockey/internal/domain/user"
)

// LeaderboardEntry is one user's aggregate standing. ExactCount and
// ScoredCount break ties between equal totals.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Points      int    `json:"points"`
	ExactCount  int    `json:"exact_count"`
	ScoredCount int    `json:"scored_count"`
}

// LeaderboardService aggregates scored predictions into ranked standings,
// either globally or for one league's members.
type LeaderboardService struct {
	predictionRepo prediction.Repository
	leagueRepo     league.Repository
	profileRepo    user.ProfileRepository
}

func NewLeaderboardService(
	predictionRepo prediction.Repository,
	leagueRepo league.Repository,
	profileRepo user.ProfileRepository,
) *LeaderboardService {
	return &LeaderboardService{
		predictionRepo: predictionRepo,
		leagueRepo:     leagueRepo,
		profileRepo:    profileRepo,
	}
}

func (s *LeaderboardService) Global(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Global")
	defer span.End()

	scored, err := s.predictionRepo.ListScored(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scored predictions: %w", err)
	}

	// Seeding with every profile keeps users who have not scored yet on the
	// board at zero, same as league boards do for their members.
	var seedIDs []string
	if s.profileRepo != nil {
		profiles, err := s.profileRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		seedIDs = make([]string, 0, len(profiles))
		for _, p := range profiles {
			seedIDs = append(seedIDs, p.UserID)
		}
	}

	return s.rank(ctx, scored, seedIDs, false)
}

// ForLeague ranks one league's members. The caller must be a member; the
// public league admits everyone and ranks all scoring users.
func (s *LeaderboardService) ForLeague(ctx context.Context, userID, leagueID string) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.ForLeague")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if leagueID == league.PublicLeagueID {
		return s.Global(ctx)
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
	if len(memberIDs) == 0 {
		return []LeaderboardEntry{}, nil
	}

	predictions, err := s.predictionRepo.ListByUsers(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("list predictions by members: %w", err)
	}

	// Seeding with the member list keeps users without a scored prediction
	// on the board, at zero.
	return s.rank(ctx, predictions, memberIDs, true)
}

// rank aggregates scored predictions into ordered standings. seedUserIDs
// pre-places users at zero; with seedOnly, predictions from anyone outside
// the seed list are ignored (league boards rank members only).
func (s *LeaderboardService) rank(ctx context.Context, predictions []prediction.Prediction, seedUserIDs []string, seedOnly bool) ([]LeaderboardEntry, error) {
	byUser := make(map[string]*LeaderboardEntry)
	for _, id := range seedUserIDs {
		byUser[id] = &LeaderboardEntry{UserID: id}
	}
	for _, p := range predictions {
		if p.Points == nil {
			continue
		}
		entry, ok := byUser[p.UserID]
		if !ok {
			if seedOnly {
				continue
			}
			entry = &LeaderboardEntry{UserID: p.UserID}
			byUser[p.UserID] = entry
		}
		entry.Points += *p.Points
		if *p.Points == prediction.PointsExact {
			entry.ExactCount++
		}
		if *p.Points > 0 {
			entry.ScoredCount++
		}
	}

	entries := make([]LeaderboardEntry, 0, len(byUser))
	for _, entry := range byUser {
		entries = append(entries, *entry)
	}

	if err := s.attachDisplayNames(ctx, entries); err != nil {
		return nil, err
	}

	sortStandings(entries)
	assignDenseRanks(entries)
	return entries, nil
}

// sortStandings orders by total points, then exact hits, then scoring
// predictions, all descending, with name and id as stable final keys.
func sortStandings(entries []LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.ExactCount != b.ExactCount {
			return a.ExactCount > b.ExactCount
		}
		if a.ScoredCount != b.ScoredCount {
			return a.ScoredCount > b.ScoredCount
		}
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		return a.UserID < b.UserID
	})
}

// assignDenseRanks gives fully tied entries the same rank with no gaps after.
func assignDenseRanks(entries []LeaderboardEntry) {
	currentRank := 0
	for idx := range entries {
		if idx == 0 || !tied(entries[idx-1], entries[idx]) {
			currentRank++
		}
		entries[idx].Rank = currentRank
	}
}

func tied(a, b LeaderboardEntry) bool {
	return a.Points == b.Points && a.ExactCount == b.ExactCount && a.ScoredCount == b.ScoredCount
}

func (s *LeaderboardService) attachDisplayNames(ctx context.Context, entries []LeaderboardEntry) error {
	if len(entries) == 0 || s.profileRepo == nil {
		return nil
	}

	userIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		userIDs = append(userIDs, entry.UserID)
	}

	profiles, err := s.profileRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("list profiles for leaderboard: %w", err)
	}

	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.UserID] = p.DisplayName
	}
	for idx := range entries {
		entries[idx].DisplayName = names[entries[idx].UserID]
	}
	return nil
}
