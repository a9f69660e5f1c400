package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/totohockey/totohockey/internal/domain/prediction"
)

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[string]prediction.Prediction
}

func NewPredictionRepository(predictions []prediction.Prediction) *PredictionRepository {
	items := make(map[string]prediction.Prediction, len(predictions))
	for _, p := range predictions {
		items[p.ID] = p
	}
	return &PredictionRepository{items: items}
}

func (r *PredictionRepository) Upsert(_ context.Context, p prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// New goals invalidate any previously computed points.
	p.Points = nil
	for id, existing := range r.items {
		if existing.UserID == p.UserID && existing.MatchID == p.MatchID && id != p.ID {
			delete(r.items, id)
		}
	}
	r.items[p.ID] = p
	return nil
}

func (r *PredictionRepository) GetByUserAndMatch(_ context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.UserID == userID && p.MatchID == matchID {
			return p, true, nil
		}
	}
	return prediction.Prediction{}, false, nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.Prediction, error) {
	return r.filter(func(p prediction.Prediction) bool { return p.UserID == userID }), nil
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID string) ([]prediction.Prediction, error) {
	return r.filter(func(p prediction.Prediction) bool { return p.MatchID == matchID }), nil
}

func (r *PredictionRepository) ListByUsers(_ context.Context, userIDs []string) ([]prediction.Prediction, error) {
	members := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		members[id] = struct{}{}
	}
	return r.filter(func(p prediction.Prediction) bool {
		_, ok := members[p.UserID]
		return ok
	}), nil
}

func (r *PredictionRepository) ListScored(_ context.Context) ([]prediction.Prediction, error) {
	return r.filter(func(p prediction.Prediction) bool { return p.Points != nil }), nil
}

func (r *PredictionRepository) UpdatePoints(_ context.Context, predictionID string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[predictionID]
	if !ok {
		return fmt.Errorf("update prediction points: not found")
	}
	p.Points = &points
	r.items[predictionID] = p
	return nil
}

func (r *PredictionRepository) ResetAllPoints(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.items {
		p.Points = nil
		r.items[id] = p
	}
	return nil
}

func (r *PredictionRepository) filter(keep func(prediction.Prediction) bool) []prediction.Prediction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, p := range r.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
