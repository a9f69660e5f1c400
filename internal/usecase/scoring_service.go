package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/totohockey/totohockey/internal/domain/match"
	"github.com/totohockey/totohockey/internal/domain/prediction"
	"github.com/totohockey/totohockey/internal/platform/logging"
	"github.com/totohockey/totohockey/internal/platform/resilience"
)

const defaultScoringWorkers = 8

// BatchFailure records one prediction that could not be rescored. The batch
// keeps going past these.
type BatchFailure struct {
	PredictionID string `json:"prediction_id"`
	MatchID      string `json:"match_id"`
	Reason       string `json:"reason"`
}

type BatchResult struct {
	Matches     int            `json:"matches"`
	Predictions int            `json:"predictions"`
	Failed      []BatchFailure `json:"failed,omitempty"`
}

func (r *BatchResult) merge(other BatchResult) {
	r.Matches += other.Matches
	r.Predictions += other.Predictions
	r.Failed = append(r.Failed, other.Failed...)
}

// scoringProcedures is the stored-procedure fast path. ScoreMatchPredictions
// returns the number of predictions it scored.
type scoringProcedures interface {
	ResetAllPredictionPoints(ctx context.Context) error
	ScoreMatchPredictions(ctx context.Context, matchID string) (int, error)
}

// ScoringService recomputes prediction points. Per match it prefers the
// database-side procedure and falls back to scoring records one by one;
// RecalculateAll resets every point first so reruns always converge to the
// same totals.
type ScoringService struct {
	predictionRepo prediction.Repository
	matchRepo      match.Repository
	procs          scoringProcedures
	logger         *logging.Logger
	flight         resilience.SingleFlight
	maxWorkers     int
	now            func() time.Time
}

func NewScoringService(
	predictionRepo prediction.Repository,
	matchRepo match.Repository,
	procs scoringProcedures,
	logger *logging.Logger,
	maxWorkers int,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = defaultScoringWorkers
	}
	return &ScoringService{
		predictionRepo: predictionRepo,
		matchRepo:      matchRepo,
		procs:          procs,
		logger:         logger,
		maxWorkers:     maxWorkers,
		now:            time.Now,
	}
}

func (s *ScoringService) RecalculateMatch(ctx context.Context, matchID string) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.RecalculateMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return BatchResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return BatchResult{}, fmt.Errorf("get match for rescore: %w", err)
	}
	if !exists {
		return BatchResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !m.HasResult() {
		return BatchResult{}, fmt.Errorf("%w: match has no recorded result", ErrInvalidInput)
	}

	return s.scoreMatch(ctx, m), nil
}

// RecalculateAll resets every prediction's points and rescores all finished
// matches. Concurrent calls collapse into one run. A failing read aborts; a
// failing write on a single prediction is counted and skipped.
func (s *ScoringService) RecalculateAll(ctx context.Context) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.RecalculateAll")
	defer span.End()

	value, err, shared := s.flight.Do("recalculate_all", func() (any, error) {
		return s.recalculateAll(ctx)
	})
	if err != nil {
		return BatchResult{}, err
	}
	if shared {
		s.logger.InfoContext(ctx, "joined in-flight full recalculation")
	}

	result, ok := value.(BatchResult)
	if !ok {
		return BatchResult{}, fmt.Errorf("unexpected recalculation result type %T", value)
	}
	return result, nil
}

func (s *ScoringService) recalculateAll(ctx context.Context) (BatchResult, error) {
	start := s.now()

	if err := s.resetAllPoints(ctx); err != nil {
		return BatchResult{}, err
	}

	matches, err := s.matchRepo.ListFinished(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list finished matches: %w", err)
	}
	if len(matches) == 0 {
		return BatchResult{}, nil
	}

	workerCount := s.maxWorkers
	if workerCount > len(matches) {
		workerCount = len(matches)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create scoring worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		total   BatchResult
		workers sync.WaitGroup
	)
	for _, m := range matches {
		m := m
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			result := s.scoreMatch(ctx, m)
			mu.Lock()
			total.merge(result)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			mu.Lock()
			total.Failed = append(total.Failed, BatchFailure{
				MatchID: m.ID,
				Reason:  fmt.Sprintf("submit to worker pool: %v", err),
			})
			mu.Unlock()
		}
	}
	workers.Wait()

	s.logger.InfoContext(ctx, "full recalculation done",
		"matches", total.Matches,
		"predictions", total.Predictions,
		"failed", len(total.Failed),
		"took", s.now().Sub(start).String(),
	)

	return total, nil
}

func (s *ScoringService) resetAllPoints(ctx context.Context) error {
	if s.procs != nil {
		if err := s.procs.ResetAllPredictionPoints(ctx); err == nil {
			return nil
		} else {
			s.logger.WarnContext(ctx, "reset procedure failed, falling back to direct reset", "error", err)
		}
	}

	if err := s.predictionRepo.ResetAllPoints(ctx); err != nil {
		return fmt.Errorf("reset all prediction points: %w", err)
	}
	return nil
}

// scoreMatch rescores one finished match. Never returns an error; failures
// land in the result so callers can keep batching.
func (s *ScoringService) scoreMatch(ctx context.Context, m match.Match) BatchResult {
	result := BatchResult{Matches: 1}

	if s.procs != nil {
		scored, err := s.procs.ScoreMatchPredictions(ctx, m.ID)
		if err == nil {
			result.Predictions = scored
			return result
		}
		s.logger.WarnContext(ctx, "scoring procedure failed, falling back to per-record scoring",
			"match_id", m.ID, "error", err)
	}

	predictions, err := s.predictionRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		result.Failed = append(result.Failed, BatchFailure{
			MatchID: m.ID,
			Reason:  fmt.Sprintf("list predictions: %v", err),
		})
		return result
	}

	for _, p := range predictions {
		points := prediction.Score(p.HomeGoals, p.AwayGoals, *m.HomeScore, *m.AwayScore)
		if err := s.predictionRepo.UpdatePoints(ctx, p.ID, points); err != nil {
			s.logger.ErrorContext(ctx, "update prediction points",
				"prediction_id", p.ID, "match_id", m.ID, "error", err)
			result.Failed = append(result.Failed, BatchFailure{
				PredictionID: p.ID,
				MatchID:      m.ID,
				Reason:       err.Error(),
			})
			continue
		}
		result.Predictions++
	}

	return result
}
