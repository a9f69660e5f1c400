package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/totohockey/totohockey/internal/domain/prediction"
	"github.com/totohockey/totohockey/internal/infrastructure/repository/memory"
	"github.com/totohockey/totohockey/internal/platform/logging"
)

type flakyPredictionRepo struct {
	prediction.Repository
	failID string
}

func (r *flakyPredictionRepo) UpdatePoints(ctx context.Context, predictionID string, points int) error {
	if predictionID == r.failID {
		return errors.New("storage hiccup")
	}
	return r.Repository.UpdatePoints(ctx, predictionID, points)
}

type stubProcs struct {
	resetCalls int
	scoreCalls int
	scored     int
	resetErr   error
	scoreErr   error
}

func (s *stubProcs) ResetAllPredictionPoints(context.Context) error {
	s.resetCalls++
	return s.resetErr
}

func (s *stubProcs) ScoreMatchPredictions(context.Context, string) (int, error) {
	s.scoreCalls++
	if s.scoreErr != nil {
		return 0, s.scoreErr
	}
	return s.scored, nil
}

func seedScoringData(t *testing.T) (*memory.PredictionRepository, *memory.MatchRepository) {
	t.Helper()
	ctx := context.Background()

	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	for _, fin := range []struct {
		matchID    string
		home, away int
	}{
		{"match-001", 2, 1},
		{"match-002", 0, 0},
	} {
		m, exists, err := matchRepo.GetByID(ctx, fin.matchID)
		if err != nil || !exists {
			t.Fatalf("get seed match %s: exists=%t err=%v", fin.matchID, exists, err)
		}
		if err := m.SetResult(fin.home, fin.away); err != nil {
			t.Fatalf("set result: %v", err)
		}
		if err := matchRepo.Update(ctx, m); err != nil {
			t.Fatalf("update match: %v", err)
		}
	}

	predictionRepo := memory.NewPredictionRepository(nil)
	for _, p := range []prediction.Prediction{
		{ID: "p1", UserID: "u1", MatchID: "match-001", HomeGoals: 2, AwayGoals: 1},
		{ID: "p2", UserID: "u2", MatchID: "match-001", HomeGoals: 1, AwayGoals: 0},
		{ID: "p3", UserID: "u1", MatchID: "match-002", HomeGoals: 1, AwayGoals: 1},
		{ID: "p4", UserID: "u2", MatchID: "match-003", HomeGoals: 4, AwayGoals: 0},
	} {
		if err := predictionRepo.Upsert(ctx, p); err != nil {
			t.Fatalf("seed prediction %s: %v", p.ID, err)
		}
	}

	// Stale points simulate a changed rule or corrected result.
	if err := predictionRepo.UpdatePoints(ctx, "p2", 3); err != nil {
		t.Fatalf("pre-set stale points: %v", err)
	}
	if err := predictionRepo.UpdatePoints(ctx, "p4", 3); err != nil {
		t.Fatalf("pre-set stale points: %v", err)
	}

	return predictionRepo, matchRepo
}

func TestScoringService_RecalculateAll_IsIdempotent(t *testing.T) {
	predictionRepo, matchRepo := seedScoringData(t)
	svc := NewScoringService(predictionRepo, matchRepo, nil, logging.NewNop(), 4)
	ctx := context.Background()

	want := map[string]int{"p1": 3, "p2": 1, "p3": 1}

	for run := 0; run < 2; run++ {
		result, err := svc.RecalculateAll(ctx)
		if err != nil {
			t.Fatalf("run %d: recalculate all: %v", run, err)
		}
		if result.Matches != 2 || result.Predictions != 3 || len(result.Failed) != 0 {
			t.Fatalf("run %d: unexpected batch result: %+v", run, result)
		}

		scored, err := predictionRepo.ListScored(ctx)
		if err != nil {
			t.Fatalf("run %d: list scored: %v", run, err)
		}
		if len(scored) != len(want) {
			t.Fatalf("run %d: unexpected scored count: got=%d want=%d", run, len(scored), len(want))
		}
		for _, p := range scored {
			if *p.Points != want[p.ID] {
				t.Fatalf("run %d: unexpected points for %s: got=%d want=%d", run, p.ID, *p.Points, want[p.ID])
			}
		}

		// p4 belongs to an unfinished match: the reset wiped its stale points.
		p4, exists, err := predictionRepo.GetByUserAndMatch(ctx, "u2", "match-003")
		if err != nil || !exists {
			t.Fatalf("run %d: get p4: exists=%t err=%v", run, exists, err)
		}
		if p4.Points != nil {
			t.Fatalf("run %d: prediction of an unfinished match must stay unscored", run)
		}
	}
}

func TestScoringService_RecalculateAll_CollectsPerRecordFailures(t *testing.T) {
	predictionRepo, matchRepo := seedScoringData(t)
	flaky := &flakyPredictionRepo{Repository: predictionRepo, failID: "p2"}
	svc := NewScoringService(flaky, matchRepo, nil, logging.NewNop(), 4)

	result, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("recalculate all: %v", err)
	}
	if result.Matches != 2 || result.Predictions != 2 {
		t.Fatalf("unexpected batch totals: %+v", result)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("expected one failure, got %+v", result.Failed)
	}
	failure := result.Failed[0]
	if failure.PredictionID != "p2" || failure.MatchID != "match-001" || failure.Reason == "" {
		t.Fatalf("unexpected failure record: %+v", failure)
	}
}

func TestScoringService_RecalculateMatch_RequiresResult(t *testing.T) {
	predictionRepo, matchRepo := seedScoringData(t)
	svc := NewScoringService(predictionRepo, matchRepo, nil, logging.NewNop(), 4)
	ctx := context.Background()

	if _, err := svc.RecalculateMatch(ctx, "match-003"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unfinished match: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.RecalculateMatch(ctx, "no-such-match"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown match: expected ErrNotFound, got %v", err)
	}

	result, err := svc.RecalculateMatch(ctx, "match-001")
	if err != nil {
		t.Fatalf("recalculate match: %v", err)
	}
	if result.Matches != 1 || result.Predictions != 2 {
		t.Fatalf("unexpected batch result: %+v", result)
	}
}

func TestScoringService_RecalculateAll_PrefersProcedures(t *testing.T) {
	predictionRepo, matchRepo := seedScoringData(t)
	procs := &stubProcs{scored: 2}
	svc := NewScoringService(predictionRepo, matchRepo, procs, logging.NewNop(), 4)

	result, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("recalculate all: %v", err)
	}
	if procs.resetCalls != 1 {
		t.Fatalf("expected one procedure reset, got %d", procs.resetCalls)
	}
	if procs.scoreCalls != 2 {
		t.Fatalf("expected one procedure call per finished match, got %d", procs.scoreCalls)
	}
	if result.Matches != 2 || result.Predictions != 4 {
		t.Fatalf("unexpected batch result: %+v", result)
	}
}

func TestScoringService_RecalculateAll_FallsBackWhenProceduresFail(t *testing.T) {
	predictionRepo, matchRepo := seedScoringData(t)
	procs := &stubProcs{scoreErr: errors.New("rpc down")}
	svc := NewScoringService(predictionRepo, matchRepo, procs, logging.NewNop(), 4)

	result, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("recalculate all: %v", err)
	}
	if result.Matches != 2 || result.Predictions != 3 || len(result.Failed) != 0 {
		t.Fatalf("expected per-record fallback to score everything: %+v", result)
	}
}
