package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/totohockey/totohockey/internal/domain/round"
)

type RoundRepository struct {
	mu    sync.RWMutex
	items map[string]round.Round
}

func NewRoundRepository(rounds []round.Round) *RoundRepository {
	items := make(map[string]round.Round, len(rounds))
	for _, r := range rounds {
		items[r.ID] = r
	}
	return &RoundRepository{items: items}
}

func (r *RoundRepository) Create(_ context.Context, rd round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[rd.ID] = rd
	return nil
}

func (r *RoundRepository) Update(_ context.Context, rd round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[rd.ID] = rd
	return nil
}

func (r *RoundRepository) Delete(_ context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, roundID)
	return nil
}

func (r *RoundRepository) GetByID(_ context.Context, roundID string) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rd, ok := r.items[roundID]
	if !ok {
		return round.Round{}, false, nil
	}
	return rd, true, nil
}

func (r *RoundRepository) ListAll(_ context.Context) ([]round.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]round.Round, 0, len(r.items))
	for _, rd := range r.items {
		out = append(out, rd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeadlineAt.Before(out[j].DeadlineAt) })
	return out, nil
}
