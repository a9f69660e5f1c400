// Package cache wraps the catalogue repositories with a read-through TTL
// cache. Teams and rounds change rarely and back every public read.
package cache

import (
	"context"

	"github.com/totohockey/totohockey/internal/domain/round"
	"github.com/totohockey/totohockey/internal/domain/team"
	basecache "github.com/totohockey/totohockey/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	if err := r.next.Create(ctx, t); err != nil {
		return err
	}
	r.invalidate(ctx, t.ID)
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	if err := r.next.Update(ctx, t); err != nil {
		return err
	}
	r.invalidate(ctx, t.ID)
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	if err := r.next.Delete(ctx, teamID); err != nil {
		return err
	}
	r.invalidate(ctx, teamID)
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) invalidate(ctx context.Context, teamID string) {
	r.cache.Delete(ctx, "team:id:"+teamID)
	r.cache.Delete(ctx, "team:list")
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type RoundRepository struct {
	next  round.Repository
	cache *basecache.Store
}

func NewRoundRepository(next round.Repository, cache *basecache.Store) *RoundRepository {
	return &RoundRepository{next: next, cache: cache}
}

func (r *RoundRepository) Create(ctx context.Context, rd round.Round) error {
	if err := r.next.Create(ctx, rd); err != nil {
		return err
	}
	r.invalidate(ctx, rd.ID)
	return nil
}

func (r *RoundRepository) Update(ctx context.Context, rd round.Round) error {
	if err := r.next.Update(ctx, rd); err != nil {
		return err
	}
	r.invalidate(ctx, rd.ID)
	return nil
}

func (r *RoundRepository) Delete(ctx context.Context, roundID string) error {
	if err := r.next.Delete(ctx, roundID); err != nil {
		return err
	}
	r.invalidate(ctx, roundID)
	return nil
}

func (r *RoundRepository) GetByID(ctx context.Context, roundID string) (round.Round, bool, error) {
	key := "round:id:" + roundID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, roundID)
		if err != nil {
			return nil, err
		}
		return cachedRoundByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return round.Round{}, false, err
	}

	cached, _ := v.(cachedRoundByID)
	return cached.value, cached.exists, nil
}

func (r *RoundRepository) ListAll(ctx context.Context) ([]round.Round, error) {
	v, err := r.cache.GetOrLoad(ctx, "round:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]round.Round(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]round.Round)
	return append([]round.Round(nil), items...), nil
}

func (r *RoundRepository) invalidate(ctx context.Context, roundID string) {
	r.cache.Delete(ctx, "round:id:"+roundID)
	r.cache.Delete(ctx, "round:list")
}

type cachedRoundByID struct {
	value  round.Round
	exists bool
}
