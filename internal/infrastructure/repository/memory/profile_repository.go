package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/totohockey/totohockey/internal/domain/user"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]user.Profile
}

func NewProfileRepository(profiles []user.Profile) *ProfileRepository {
	items := make(map[string]user.Profile, len(profiles))
	for _, p := range profiles {
		items[p.UserID] = p
	}
	return &ProfileRepository{items: items}
}

func (r *ProfileRepository) Upsert(_ context.Context, p user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.UserID] = p
	return nil
}

func (r *ProfileRepository) GetByID(_ context.Context, userID string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[userID]
	if !ok {
		return user.Profile{}, false, nil
	}
	return p, true, nil
}

func (r *ProfileRepository) ListByIDs(_ context.Context, userIDs []string) ([]user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Profile, 0, len(userIDs))
	for _, id := range userIDs {
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProfileRepository) ListAll(_ context.Context) ([]user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Profile, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
