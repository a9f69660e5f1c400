package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/totohockey/totohockey/internal/domain/league"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	items   map[string]league.League
	members map[string]map[string]league.Membership
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	for _, l := range leagues {
		items[l.ID] = l
	}
	return &LeagueRepository{
		items:   items,
		members: make(map[string]map[string]league.Membership),
	}
}

func (r *LeagueRepository) Create(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[l.ID] = l
	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}
	return l, true, nil
}

func (r *LeagueRepository) GetByInviteCode(_ context.Context, code string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.items {
		if l.InviteCode == code {
			return l, true, nil
		}
	}
	return league.League{}, false, nil
}

func (r *LeagueRepository) ListByMember(_ context.Context, userID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0)
	for leagueID, byUser := range r.members {
		if _, ok := byUser[userID]; !ok {
			continue
		}
		if l, ok := r.items[leagueID]; ok {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *LeagueRepository) UpdateInvite(_ context.Context, leagueID, code string, issuedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.items[leagueID]
	if !ok {
		return nil
	}
	l.InviteCode = code
	l.InviteIssuedAt = &issuedAt
	l.UpdatedAt = issuedAt
	r.items[leagueID] = l
	return nil
}

func (r *LeagueRepository) AddMember(_ context.Context, m league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byUser, ok := r.members[m.LeagueID]
	if !ok {
		byUser = make(map[string]league.Membership)
		r.members[m.LeagueID] = byUser
	}
	if _, exists := byUser[m.UserID]; exists {
		return nil
	}
	byUser[m.UserID] = m
	return nil
}

func (r *LeagueRepository) IsMember(_ context.Context, leagueID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser, ok := r.members[leagueID]
	if !ok {
		return false, nil
	}
	_, ok = byUser[userID]
	return ok, nil
}

func (r *LeagueRepository) ListMemberIDs(_ context.Context, leagueID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser, ok := r.members[leagueID]
	if !ok {
		return []string{}, nil
	}

	memberships := make([]league.Membership, 0, len(byUser))
	for _, m := range byUser {
		memberships = append(memberships, m)
	}
	sort.Slice(memberships, func(i, j int) bool {
		if !memberships[i].JoinedAt.Equal(memberships[j].JoinedAt) {
			return memberships[i].JoinedAt.Before(memberships[j].JoinedAt)
		}
		return memberships[i].UserID < memberships[j].UserID
	})

	out := make([]string, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, m.UserID)
	}
	return out, nil
}
