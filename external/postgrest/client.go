// Package postgrest calls the scoring functions that live inside the
// database, exposed through a PostgREST-style /rpc endpoint. The scoring
// service treats this as a fast path and falls back to per-record scoring
// when a call fails.
package postgrest

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/totohockey/totohockey/internal/platform/logging"
	"github.com/totohockey/totohockey/internal/platform/resilience"
)

var errTransient = crerr.New("postgrest transient failure")

const (
	procResetAllPoints  = "reset_all_prediction_points"
	procScorePrediction = "score_match_predictions"
)

type ClientConfig struct {
	BaseURL        string
	ServiceKey     string
	Retries        int
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	serviceKey     string
	retries        int
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &fasthttp.Client{},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		serviceKey:     strings.TrimSpace(cfg.ServiceKey),
		retries:        cfg.Retries,
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ResetAllPredictionPoints clears every prediction's points in one call.
func (c *Client) ResetAllPredictionPoints(ctx context.Context) error {
	_, err := c.callProcedure(ctx, procResetAllPoints, nil)
	return err
}

// ScoreMatchPredictions rescores all predictions of one match in the
// database and returns the scored row count.
func (c *Client) ScoreMatchPredictions(ctx context.Context, matchID string) (int, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return 0, crerr.New("match id is required")
	}

	body, err := c.callProcedure(ctx, procScorePrediction, map[string]any{"p_match_id": matchID})
	if err != nil {
		return 0, err
	}

	var scored int
	if err := sonic.Unmarshal(body, &scored); err != nil {
		return 0, crerr.Wrapf(err, "decode %s response", procScorePrediction)
	}
	return scored, nil
}

func (c *Client) callProcedure(ctx context.Context, name string, args map[string]any) ([]byte, error) {
	if c.baseURL == "" {
		return nil, crerr.New("postgrest base url is not configured")
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "postgrest circuit breaker rejected call",
				"procedure", name, "state", string(c.breaker.State()))
			return nil, fmt.Errorf("postgrest is temporarily unavailable: %w", err)
		}
	}

	payload := bytebufferpool.Get()
	defer bytebufferpool.Put(payload)
	if len(args) == 0 {
		_, _ = payload.WriteString("{}")
	} else {
		encoded, err := sonic.Marshal(args)
		if err != nil {
			return nil, crerr.Wrapf(err, "marshal %s arguments", name)
		}
		_, _ = payload.Write(encoded)
	}

	var (
		body    []byte
		callErr error
	)
	attempts := c.retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			callErr = err
			break
		}

		body, callErr = c.doCall(name, payload.Bytes())
		if callErr == nil {
			break
		}
		if !stderrors.Is(callErr, errTransient) {
			break
		}
		if attempt < attempts-1 {
			c.logger.WarnContext(ctx, "postgrest call failed, retrying",
				"procedure", name, "attempt", attempt+1, "error", callErr)
		}
	}

	c.recordCircuitResult(callErr)
	if callErr != nil {
		return nil, callErr
	}
	return body, nil
}

func (c *Client) doCall(name string, payload []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/rpc/" + name)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.serviceKey != "" {
		req.Header.Set("apikey", c.serviceKey)
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}
	req.SetBody(payload)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("%w: call %s: %v", errTransient, name, err)
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		raw := strings.TrimSpace(string(resp.Body()))
		if isRetryableStatus(status) {
			return nil, fmt.Errorf("%w: call %s status=%d body=%s", errTransient, name, status, raw)
		}
		return nil, crerr.Newf("call %s status=%d body=%s", name, status, raw)
	}

	return append([]byte(nil), resp.Body()...), nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err != nil && stderrors.Is(err, errTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}
