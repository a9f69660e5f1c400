package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/totohockey/totohockey/internal/domain/league"
	idgen "github.com/totohockey/totohockey/internal/platform/id"
)

type CreateLeagueInput struct {
	UserID      string
	Name        string
	Description string
}

// InviteStatus is what the owner sees on the invite screen: the active code
// and how long it stays valid.
type InviteStatus struct {
	Code     string
	IssuedAt time.Time
	Expired  bool
	Hours    int
	Minutes  int
	Seconds  int
}

type allRecalculator interface {
	RecalculateAll(ctx context.Context) (BatchResult, error)
}

// LeagueService manages private leagues and their invite lifecycle. Invite
// codes live for league.InviteTTL; regenerating one kills the old code on
// the spot.
type LeagueService struct {
	leagueRepo league.Repository
	scoring    allRecalculator
	idGen      idgen.Generator
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	scoring allRecalculator,
	idGen idgen.Generator,
) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		scoring:    scoring,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *LeagueService) Create(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	inviteCode, err := league.NewInviteCode()
	if err != nil {
		return league.League{}, fmt.Errorf("generate invite code: %w", err)
	}

	now := s.now().UTC()
	l := league.League{
		ID:             leagueID,
		Name:           input.Name,
		Description:    input.Description,
		OwnerUserID:    input.UserID,
		InviteCode:     inviteCode,
		InviteIssuedAt: &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.leagueRepo.Create(ctx, l); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	if err := s.leagueRepo.AddMember(ctx, league.Membership{
		LeagueID:  leagueID,
		UserID:    input.UserID,
		JoinedAt:  now,
		CreatedAt: now,
	}); err != nil {
		return league.League{}, fmt.Errorf("add league owner as member: %w", err)
	}

	return l, nil
}

// ListMine returns the leagues the user belongs to, with the public league
// always first.
func (s *LeagueService) ListMine(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.ListMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	mine, err := s.leagueRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by member: %w", err)
	}

	items := make([]league.League, 0, len(mine)+1)
	items = append(items, league.PublicLeague())
	items = append(items, mine...)
	return items, nil
}

func (s *LeagueService) Get(ctx context.Context, userID, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if leagueID == league.PublicLeagueID {
		return league.PublicLeague(), nil
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	isMember, err := s.leagueRepo.IsMember(ctx, leagueID, userID)
	if err != nil {
		return league.League{}, fmt.Errorf("check league member: %w", err)
	}
	if !isMember {
		return league.League{}, fmt.Errorf("%w: you are not a member of this league", ErrUnauthorized)
	}

	return l, nil
}

// RegenerateInvite issues a fresh code for an owner. The previous code stops
// resolving immediately, before its own window would have closed.
func (s *LeagueService) RegenerateInvite(ctx context.Context, userID, leagueID string) (InviteStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.RegenerateInvite")
	defer span.End()

	l, err := s.ownedLeague(ctx, userID, leagueID)
	if err != nil {
		return InviteStatus{}, err
	}

	code, err := league.NewInviteCode()
	if err != nil {
		return InviteStatus{}, fmt.Errorf("generate invite code: %w", err)
	}

	now := s.now().UTC()
	if err := s.leagueRepo.UpdateInvite(ctx, l.ID, code, now); err != nil {
		return InviteStatus{}, fmt.Errorf("update league invite: %w", err)
	}

	return s.inviteStatus(code, now), nil
}

// Invite reports the league's current code and its remaining validity.
func (s *LeagueService) Invite(ctx context.Context, userID, leagueID string) (InviteStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.Invite")
	defer span.End()

	l, err := s.ownedLeague(ctx, userID, leagueID)
	if err != nil {
		return InviteStatus{}, err
	}
	if l.InviteCode == "" || l.InviteIssuedAt == nil {
		return InviteStatus{}, fmt.Errorf("%w: league has no invite code", ErrNotFound)
	}

	return s.inviteStatus(l.InviteCode, *l.InviteIssuedAt), nil
}

// JoinByCode adds the caller to the league behind a live invite code. An
// unknown code is not found; a known but stale one is expired. Joining a
// league you are already in succeeds without a second membership.
func (s *LeagueService) JoinByCode(ctx context.Context, userID, code string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.JoinByCode")
	defer span.End()

	userID = strings.TrimSpace(userID)
	code = strings.ToUpper(strings.TrimSpace(code))
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if code == "" {
		return league.League{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByInviteCode(ctx, code)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by invite code: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: invite code", ErrNotFound)
	}
	if l.InviteIssuedAt == nil || league.IsInviteExpired(*l.InviteIssuedAt, s.now().UTC()) {
		return league.League{}, fmt.Errorf("%w: ask the owner for a fresh code", ErrInviteExpired)
	}

	isMember, err := s.leagueRepo.IsMember(ctx, l.ID, userID)
	if err != nil {
		return league.League{}, fmt.Errorf("check league member: %w", err)
	}
	if isMember {
		return l, nil
	}

	now := s.now().UTC()
	if err := s.leagueRepo.AddMember(ctx, league.Membership{
		LeagueID:  l.ID,
		UserID:    userID,
		JoinedAt:  now,
		CreatedAt: now,
	}); err != nil {
		return league.League{}, fmt.Errorf("add league member: %w", err)
	}

	return l, nil
}

// Recalculate lets a league owner force a full point recomputation.
func (s *LeagueService) Recalculate(ctx context.Context, userID, leagueID string) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.Recalculate")
	defer span.End()

	if _, err := s.ownedLeague(ctx, userID, leagueID); err != nil {
		return BatchResult{}, err
	}
	if s.scoring == nil {
		return BatchResult{}, fmt.Errorf("%w: scoring is not configured", ErrDependencyUnavailable)
	}

	result, err := s.scoring.RecalculateAll(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("recalculate league points: %w", err)
	}
	return result, nil
}

// ownedLeague loads a league and rejects anyone but its owner, before any
// mutation happens.
func (s *LeagueService) ownedLeague(ctx context.Context, userID, leagueID string) (league.League, error) {
	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if leagueID == league.PublicLeagueID {
		return league.League{}, fmt.Errorf("%w: the public league has no owner", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if l.OwnerUserID != userID {
		return league.League{}, fmt.Errorf("%w: only the league owner may do this", ErrUnauthorized)
	}

	return l, nil
}

func (s *LeagueService) inviteStatus(code string, issuedAt time.Time) InviteStatus {
	status := InviteStatus{
		Code:     code,
		IssuedAt: issuedAt,
	}
	remaining, valid := league.RemainingValidity(issuedAt, s.now().UTC())
	if !valid {
		status.Expired = true
		return status
	}
	status.Hours = remaining.Hours
	status.Minutes = remaining.Minutes
	status.Seconds = remaining.Seconds
	return status
}
