package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/totohockey/totohockey/internal/domain/league"
	"github.com/totohockey/totohockey/internal/infrastructure/repository/memory"
	idgen "github.com/totohockey/totohockey/internal/platform/id"
)

var inviteIssuedAt = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type stubRecalculator struct {
	calls  int
	result BatchResult
}

func (s *stubRecalculator) RecalculateAll(context.Context) (BatchResult, error) {
	s.calls++
	return s.result, nil
}

func newLeagueFixture(scoring allRecalculator) (*LeagueService, *memory.LeagueRepository) {
	repo := memory.NewLeagueRepository(nil)
	svc := NewLeagueService(repo, scoring, idgen.NewRandomGenerator())
	svc.now = func() time.Time { return inviteIssuedAt }
	return svc, repo
}

func TestLeagueService_Create(t *testing.T) {
	svc, repo := newLeagueFixture(nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateLeagueInput{UserID: "user-demo-1", Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: expected ErrInvalidInput, got %v", err)
	}

	created, err := svc.Create(ctx, CreateLeagueInput{
		UserID:      "user-demo-1",
		Name:        "Kantoorpoule",
		Description: "Collega's van de vrijdagborrel",
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	if created.ID == "" || created.OwnerUserID != "user-demo-1" {
		t.Fatalf("unexpected league: %+v", created)
	}
	if len(created.InviteCode) != 8 {
		t.Fatalf("expected an 8 character invite code, got %q", created.InviteCode)
	}
	if created.InviteIssuedAt == nil || !created.InviteIssuedAt.Equal(inviteIssuedAt) {
		t.Fatalf("invite must be issued at creation time: %+v", created.InviteIssuedAt)
	}

	isMember, err := repo.IsMember(ctx, created.ID, "user-demo-1")
	if err != nil {
		t.Fatalf("check membership: %v", err)
	}
	if !isMember {
		t.Fatalf("the owner must join their own league on creation")
	}

	mine, err := svc.ListMine(ctx, "user-demo-1")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != league.PublicLeagueID || mine[1].ID != created.ID {
		t.Fatalf("expected the public league first, then mine: %+v", mine)
	}
}

func TestLeagueService_InviteStatus(t *testing.T) {
	svc, _ := newLeagueFixture(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateLeagueInput{UserID: "user-demo-1", Name: "Kantoorpoule"})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}

	status, err := svc.Invite(ctx, "user-demo-1", created.ID)
	if err != nil {
		t.Fatalf("invite status: %v", err)
	}
	if status.Code != created.InviteCode || status.Expired {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.Hours != 12 || status.Minutes != 0 || status.Seconds != 0 {
		t.Fatalf("fresh code must carry the full window: %+v", status)
	}

	svc.now = func() time.Time { return inviteIssuedAt.Add(11*time.Hour + 30*time.Minute) }
	status, err = svc.Invite(ctx, "user-demo-1", created.ID)
	if err != nil {
		t.Fatalf("invite status: %v", err)
	}
	if status.Expired || status.Hours != 0 || status.Minutes != 30 || status.Seconds != 0 {
		t.Fatalf("expected 30 minutes left: %+v", status)
	}

	svc.now = func() time.Time { return inviteIssuedAt.Add(11*time.Hour + 59*time.Minute + 15*time.Second) }
	status, err = svc.Invite(ctx, "user-demo-1", created.ID)
	if err != nil {
		t.Fatalf("invite status: %v", err)
	}
	if status.Expired || status.Hours != 0 || status.Minutes != 0 || status.Seconds != 45 {
		t.Fatalf("expected 45 seconds left: %+v", status)
	}

	svc.now = func() time.Time { return inviteIssuedAt.Add(league.InviteTTL) }
	status, err = svc.Invite(ctx, "user-demo-1", created.ID)
	if err != nil {
		t.Fatalf("invite status: %v", err)
	}
	if !status.Expired || status.Hours != 0 || status.Minutes != 0 {
		t.Fatalf("code must expire when its window closes: %+v", status)
	}

	if _, err := svc.Invite(ctx, "user-demo-2", created.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-owner: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Invite(ctx, "user-demo-1", league.PublicLeagueID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("public league: expected ErrInvalidInput, got %v", err)
	}
}

func TestLeagueService_JoinByCode(t *testing.T) {
	svc, repo := newLeagueFixture(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateLeagueInput{UserID: "user-demo-1", Name: "Kantoorpoule"})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}

	if _, err := svc.JoinByCode(ctx, "user-demo-2", "NOSUCHCD"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown code: expected ErrNotFound, got %v", err)
	}

	// Codes are matched case-insensitively.
	joined, err := svc.JoinByCode(ctx, "user-demo-2", strings.ToLower(created.InviteCode))
	if err != nil {
		t.Fatalf("join by code: %v", err)
	}
	if joined.ID != created.ID {
		t.Fatalf("joined the wrong league: %+v", joined)
	}

	if _, err := svc.JoinByCode(ctx, "user-demo-2", created.InviteCode); err != nil {
		t.Fatalf("re-join must be a no-op, got %v", err)
	}
	memberIDs, err := repo.ListMemberIDs(ctx, created.ID)
	if err != nil {
		t.Fatalf("list member ids: %v", err)
	}
	if len(memberIDs) != 2 {
		t.Fatalf("expected owner plus one member, got %v", memberIDs)
	}

	svc.now = func() time.Time { return inviteIssuedAt.Add(league.InviteTTL) }
	if _, err := svc.JoinByCode(ctx, "user-demo-3", created.InviteCode); !errors.Is(err, ErrInviteExpired) {
		t.Fatalf("stale code: expected ErrInviteExpired, got %v", err)
	}
}

func TestLeagueService_RegenerateInvite(t *testing.T) {
	svc, _ := newLeagueFixture(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateLeagueInput{UserID: "user-demo-1", Name: "Kantoorpoule"})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}

	if _, err := svc.RegenerateInvite(ctx, "user-demo-2", created.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-owner: expected ErrUnauthorized, got %v", err)
	}

	svc.now = func() time.Time { return inviteIssuedAt.Add(2 * time.Hour) }
	status, err := svc.RegenerateInvite(ctx, "user-demo-1", created.ID)
	if err != nil {
		t.Fatalf("regenerate invite: %v", err)
	}
	if status.Code == created.InviteCode {
		t.Fatalf("regeneration must mint a new code")
	}
	if status.Expired || status.Hours != 12 || status.Minutes != 0 {
		t.Fatalf("new code must carry a full window: %+v", status)
	}

	// The previous code dies immediately, well before its own window closes.
	if _, err := svc.JoinByCode(ctx, "user-demo-2", created.InviteCode); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old code: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.JoinByCode(ctx, "user-demo-2", status.Code); err != nil {
		t.Fatalf("join with the new code: %v", err)
	}
}

func TestLeagueService_Recalculate(t *testing.T) {
	scoring := &stubRecalculator{result: BatchResult{Matches: 2, Predictions: 5}}
	svc, _ := newLeagueFixture(scoring)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateLeagueInput{UserID: "user-demo-1", Name: "Kantoorpoule"})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}

	if _, err := svc.Recalculate(ctx, "user-demo-2", created.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-owner: expected ErrUnauthorized, got %v", err)
	}
	if scoring.calls != 0 {
		t.Fatalf("rejected caller must not trigger a recalculation")
	}

	result, err := svc.Recalculate(ctx, "user-demo-1", created.ID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if result.Matches != 2 || result.Predictions != 5 || scoring.calls != 1 {
		t.Fatalf("unexpected result: %+v calls=%d", result, scoring.calls)
	}
}
