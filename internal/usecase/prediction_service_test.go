package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/totohockey/totohockey/internal/domain/league"
	"github.com/totohockey/totohockey/internal/infrastructure/repository/memory"
	idgen "github.com/totohockey/totohockey/internal/platform/id"
)

var (
	beforeDeadline = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	afterDeadline  = time.Date(2026, 6, 13, 10, 0, 0, 0, time.UTC)
)

func newPredictionFixture() (*PredictionService, *memory.MatchRepository, *memory.LeagueRepository) {
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	leagueRepo := memory.NewLeagueRepository(nil)

	svc := NewPredictionService(
		memory.NewPredictionRepository(nil),
		matchRepo,
		memory.NewRoundRepository(memory.SeedRounds()),
		leagueRepo,
		memory.NewProfileRepository(memory.SeedProfiles()),
		idgen.NewRandomGenerator(),
	)
	svc.now = func() time.Time { return beforeDeadline }

	return svc, matchRepo, leagueRepo
}

func TestPredictionService_Save_ResaveKeepsIdentity(t *testing.T) {
	svc, _, _ := newPredictionFixture()
	ctx := context.Background()

	first, err := svc.Save(ctx, SavePredictionInput{
		UserID: "user-demo-1", MatchID: "match-001", HomeGoals: 2, AwayGoals: 1,
	})
	if err != nil {
		t.Fatalf("save prediction: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected a generated prediction id")
	}

	second, err := svc.Save(ctx, SavePredictionInput{
		UserID: "user-demo-1", MatchID: "match-001", HomeGoals: 0, AwayGoals: 3,
	})
	if err != nil {
		t.Fatalf("re-save prediction: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("re-save must keep the prediction id: got=%s want=%s", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("re-save must keep the original created_at")
	}
	if second.HomeGoals != 0 || second.AwayGoals != 3 {
		t.Fatalf("re-save must replace the scoreline")
	}

	mine, err := svc.ListMine(ctx, "user-demo-1")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected one prediction per match, got %d", len(mine))
	}
}

func TestPredictionService_Save_Rejections(t *testing.T) {
	svc, matchRepo, _ := newPredictionFixture()
	ctx := context.Background()

	_, err := svc.Save(ctx, SavePredictionInput{UserID: "u1", MatchID: "match-001", HomeGoals: -1, AwayGoals: 0})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative goals: expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.Save(ctx, SavePredictionInput{UserID: "u1", MatchID: "no-such-match", HomeGoals: 1, AwayGoals: 0})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown match: expected ErrNotFound, got %v", err)
	}

	svc.now = func() time.Time { return afterDeadline }
	_, err = svc.Save(ctx, SavePredictionInput{UserID: "u1", MatchID: "match-001", HomeGoals: 1, AwayGoals: 0})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("past deadline: expected ErrInvalidInput, got %v", err)
	}

	// A recorded result locks the match even if the deadline check were to pass.
	svc.now = func() time.Time { return beforeDeadline }
	m, exists, err := matchRepo.GetByID(ctx, "match-003")
	if err != nil || !exists {
		t.Fatalf("get seed match: exists=%t err=%v", exists, err)
	}
	if err := m.SetResult(2, 2); err != nil {
		t.Fatalf("set result: %v", err)
	}
	if err := matchRepo.Update(ctx, m); err != nil {
		t.Fatalf("update match: %v", err)
	}
	_, err = svc.Save(ctx, SavePredictionInput{UserID: "u1", MatchID: "match-003", HomeGoals: 1, AwayGoals: 0})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("finished match: expected ErrInvalidInput, got %v", err)
	}
}

func TestPredictionService_LeagueMatchPredictions(t *testing.T) {
	svc, _, leagueRepo := newPredictionFixture()
	ctx := context.Background()

	if err := leagueRepo.Create(ctx, league.League{ID: "l1", Name: "Kantoor", OwnerUserID: "user-demo-1"}); err != nil {
		t.Fatalf("create league: %v", err)
	}
	for _, userID := range []string{"user-demo-1", "user-demo-2"} {
		if err := leagueRepo.AddMember(ctx, league.Membership{LeagueID: "l1", UserID: userID}); err != nil {
			t.Fatalf("add member: %v", err)
		}
	}

	for _, userID := range []string{"user-demo-1", "user-demo-2", "user-demo-3"} {
		if _, err := svc.Save(ctx, SavePredictionInput{UserID: userID, MatchID: "match-001", HomeGoals: 2, AwayGoals: 1}); err != nil {
			t.Fatalf("save prediction for %s: %v", userID, err)
		}
	}
	_, err := svc.LeagueMatchPredictions(ctx, "user-demo-1", "l1", "match-001")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("before deadline: expected ErrUnauthorized, got %v", err)
	}

	svc.now = func() time.Time { return afterDeadline }

	_, err = svc.LeagueMatchPredictions(ctx, "user-demo-3", "l1", "match-001")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-member: expected ErrUnauthorized, got %v", err)
	}

	items, err := svc.LeagueMatchPredictions(ctx, "user-demo-1", "l1", "match-001")
	if err != nil {
		t.Fatalf("league match predictions: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected only member predictions, got %d", len(items))
	}
	names := map[string]string{}
	for _, item := range items {
		names[item.UserID] = item.DisplayName
	}
	if names["user-demo-1"] != "Sanne" || names["user-demo-2"] != "Wouter" {
		t.Fatalf("unexpected display names: %v", names)
	}

	// The public league reveals everyone's forecast.
	all, err := svc.LeagueMatchPredictions(ctx, "user-demo-3", league.PublicLeagueID, "match-001")
	if err != nil {
		t.Fatalf("public league predictions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all predictions in the public league, got %d", len(all))
	}
}
