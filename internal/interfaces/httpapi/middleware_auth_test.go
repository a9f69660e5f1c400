package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/totohockey/totohockey/internal/domain/user"
	"github.com/totohockey/totohockey/internal/usecase"
)

type stubVerifier struct {
	principal user.Principal
	err       error
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	return v.principal, v.err
}

func TestRequireAuth_StoresPrincipal(t *testing.T) {
	verifier := stubVerifier{principal: user.Principal{UserID: "user-demo-1", Role: "user"}}

	var seen user.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/predictions", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()

	RequireAuth(verifier, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if seen.UserID != "user-demo-1" {
		t.Fatalf("expected the principal on the request context, got %+v", seen)
	}
}

func TestRequireAuth_RejectsBadHeaders(t *testing.T) {
	verifier := stubVerifier{principal: user.Principal{UserID: "user-demo-1"}}
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("rejected request must not reach the wrapped handler")
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/predictions", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(verifier, next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireAuth_RejectsFailedVerification(t *testing.T) {
	verifier := stubVerifier{err: fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)}
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("rejected request must not reach the wrapped handler")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/predictions", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()

	RequireAuth(verifier, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/teams", nil)
	rec := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing principal: expected status 401, got %d", rec.Code)
	}

	member := withPrincipal(context.Background(), user.Principal{UserID: "user-demo-1", Role: "user"})
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req.WithContext(member))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin: expected status 401, got %d", rec.Code)
	}

	admin := withPrincipal(context.Background(), user.Principal{UserID: "user-demo-9", Role: user.RoleAdmin})
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req.WithContext(admin))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected status 200, got %d", rec.Code)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireInternalJobToken("job-secret", next)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected status 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate", nil)
	req.Header.Set(internalJobTokenHeader, "wrong-secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: expected status 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate", nil)
	req.Header.Set(internalJobTokenHeader, "job-secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: expected status 200, got %d", rec.Code)
	}

	// An empty configured token disables the endpoint outright.
	disabled := RequireInternalJobToken("", next)
	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate", nil)
	req.Header.Set(internalJobTokenHeader, "")
	rec = httptest.NewRecorder()
	disabled.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("disabled endpoint: expected status 401, got %d", rec.Code)
	}
}
