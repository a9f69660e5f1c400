package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/totohockey/totohockey/internal/domain/user"
	"github.com/totohockey/totohockey/internal/infrastructure/repository/memory"
	idgen "github.com/totohockey/totohockey/internal/platform/id"
	"github.com/totohockey/totohockey/internal/platform/logging"
	"github.com/totohockey/totohockey/internal/usecase"
)

type roleVerifier struct{}

// VerifyAccessToken treats the bearer token as "<userID>" or "<userID>:admin"
// so route tests can pick their principal per request.
func (roleVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	userID, role, _ := strings.Cut(token, ":")
	if role == "" {
		role = "user"
	}
	return user.Principal{UserID: userID, Role: role}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	predictionRepo := memory.NewPredictionRepository(nil)
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	roundRepo := memory.NewRoundRepository(memory.SeedRounds())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	leagueRepo := memory.NewLeagueRepository(nil)
	profileRepo := memory.NewProfileRepository(memory.SeedProfiles())
	idGen := idgen.NewRandomGenerator()

	scoring := usecase.NewScoringService(predictionRepo, matchRepo, nil, logging.NewNop(), 2)
	handler := NewHandler(
		usecase.NewPredictionService(predictionRepo, matchRepo, roundRepo, leagueRepo, profileRepo, idGen),
		usecase.NewCompetitionService(teamRepo, roundRepo, matchRepo, scoring, idGen),
		usecase.NewLeagueService(leagueRepo, scoring, idGen),
		usecase.NewLeaderboardService(predictionRepo, leagueRepo, profileRepo),
		scoring,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return NewRouter(RouterConfig{
		Handler:          handler,
		TokenVerifier:    roleVerifier{},
		InternalJobToken: "job-secret",
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list teams: expected status 200, got %d", rec.Code)
	}

	var body struct {
		Data []teamDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal teams response: %v", err)
	}
	if len(body.Data) == 0 {
		t.Fatalf("expected seeded teams in the catalogue")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("global leaderboard: expected status 200, got %d", rec.Code)
	}
}

func TestRouter_AuthGates(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/predictions", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected status 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/predictions", nil)
	req.Header.Set("Authorization", "Bearer user-demo-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signed-in list: expected status 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/admin/teams", strings.NewReader(`{"name":"Japan"}`))
	req.Header.Set("Authorization", "Bearer user-demo-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin on admin route: expected status 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/admin/teams", strings.NewReader(`{"name":"Japan","short_name":"JPN"}`))
	req.Header.Set("Authorization", "Bearer admin-demo:admin")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create team: expected status 201, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/teams", strings.NewReader(`{"name":`))
	req.Header.Set("Authorization", "Bearer admin-demo:admin")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected status 400, got %d", rec.Code)
	}

	// Validation failures map the same way as parse failures.
	req = httptest.NewRequest(http.MethodPost, "/v1/admin/teams", strings.NewReader(`{"short_name":"JPN"}`))
	req.Header.Set("Authorization", "Bearer admin-demo:admin")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing name: expected status 400, got %d", rec.Code)
	}
}

func TestRouter_InternalJobEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing job token: expected status 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate", nil)
	req.Header.Set(internalJobTokenHeader, "job-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid job token: expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}
