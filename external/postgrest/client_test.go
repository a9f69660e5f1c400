package postgrest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/totohockey/totohockey/internal/platform/logging"
	"github.com/totohockey/totohockey/internal/platform/resilience"
)

func newTestClient(baseURL string, retries int) *Client {
	return NewClient(ClientConfig{
		BaseURL: baseURL,
		Retries: retries,
		Timeout: 2 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	}, logging.NewNop())
}

func TestScoreMatchPredictions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rpc/score_match_predictions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		raw, _ := io.ReadAll(r.Body)
		var args map[string]string
		if err := sonic.Unmarshal(raw, &args); err != nil {
			t.Errorf("unmarshal rpc arguments: %v", err)
		}
		if args["p_match_id"] != "match-001" {
			t.Errorf("unexpected match id argument: %q", args["p_match_id"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("4"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)

	scored, err := client.ScoreMatchPredictions(context.Background(), "match-001")
	if err != nil {
		t.Fatalf("score match predictions: %v", err)
	}
	if scored != 4 {
		t.Fatalf("unexpected scored count: %d", scored)
	}
}

func TestScoreMatchPredictions_RequiresMatchID(t *testing.T) {
	client := newTestClient("http://localhost:3000", 0)

	if _, err := client.ScoreMatchPredictions(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for an empty match id")
	}
}

func TestResetAllPredictionPoints_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rpc/reset_all_prediction_points" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)

	if err := client.ResetAllPredictionPoints(context.Background()); err != nil {
		t.Fatalf("reset all prediction points: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected a retry after the transient failure, got %d calls", got)
	}
}

func TestCallProcedure_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"unknown function"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	if err := client.ResetAllPredictionPoints(context.Background()); err == nil {
		t.Fatalf("expected error for a 400 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("client errors must not be retried, got %d calls", got)
	}
}

func TestCallProcedure_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Retries: 0,
		Timeout: 2 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := client.ResetAllPredictionPoints(ctx); err == nil {
			t.Fatalf("expected failure %d", i)
		}
	}
	before := calls.Load()

	// The breaker is open now: the next call is rejected without hitting
	// the server.
	if err := client.ResetAllPredictionPoints(ctx); err == nil {
		t.Fatalf("expected the open circuit to reject the call")
	}
	if calls.Load() != before {
		t.Fatalf("open circuit must not forward calls")
	}
}
