package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/totohockey/totohockey/internal/domain/league"
	leaguemock "github.com/totohockey/totohockey/internal/mocks/domain/league"
	idgen "github.com/totohockey/totohockey/internal/platform/id"
)

func TestLeagueService_Get_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)

	service := NewLeagueService(leagueRepo, nil, idgen.NewRandomGenerator())
	leagueID := "league-kantoor"
	stored := league.League{ID: leagueID, Name: "Kantoorpoule", OwnerUserID: "user-demo-1"}

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(stored, true, nil).
		Once()
	leagueRepo.
		On("IsMember", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID, "user-demo-2").
		Return(true, nil).
		Once()

	got, err := service.Get(ctx, "user-demo-2", leagueID)
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if got.ID != leagueID || got.Name != stored.Name {
		t.Fatalf("unexpected league: %+v", got)
	}
}

func TestLeagueService_JoinByCode_UnknownCodeUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)

	service := NewLeagueService(leagueRepo, nil, idgen.NewRandomGenerator())

	leagueRepo.
		On("GetByInviteCode", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "WRONGKEY").
		Return(league.League{}, false, nil).
		Once()

	_, err := service.JoinByCode(ctx, "user-demo-2", "wrongkey")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_Invite_NotOwnerUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)

	service := NewLeagueService(leagueRepo, nil, idgen.NewRandomGenerator())
	leagueID := "league-kantoor"

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(league.League{ID: leagueID, OwnerUserID: "user-demo-1"}, true, nil).
		Once()

	_, err := service.Invite(ctx, "user-demo-2", leagueID)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
