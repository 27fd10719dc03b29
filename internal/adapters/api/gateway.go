package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shared"
)

// Gateway is the single point of contact with the remote API, grounded on
// the teacher's SpaceTradersClient (internal/adapters/api/client.go):
// a *http.Client plus a token-bucket rate.Limiter plus an injected Clock,
// wrapped by a CircuitBreaker as an additional (non-spec-mandated)
// resilience layer. It guarantees at most one in-flight request at a time:
// every send holds mu from the HTTP round-trip until the body is read, while
// the rate limiter bounds how often sends start, per spec.md §4.1.
type Gateway struct {
	mu             sync.Mutex
	httpClient     *http.Client
	baseURL        string
	limiter        *rate.Limiter
	circuitBreaker *CircuitBreaker
	clock          shared.Clock
}

// Option configures a Gateway at construction time.
type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option { return func(g *Gateway) { g.httpClient = c } }
func WithBaseURL(url string) Option        { return func(g *Gateway) { g.baseURL = url } }
func WithClock(c shared.Clock) Option      { return func(g *Gateway) { g.clock = c } }
func WithRateLimiter(l *rate.Limiter) Option {
	return func(g *Gateway) { g.limiter = l }
}

// NewGateway constructs a Gateway with production defaults: a 2 req/s token
// bucket (matching the teacher's default), a real clock, and a circuit
// breaker tripping after 5 consecutive failures with a 60s cool-down.
func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.spacetraders.io/v2",
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
		clock:      shared.NewRealClock(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.circuitBreaker == nil {
		g.circuitBreaker = NewCircuitBreaker(5, 60*time.Second, g.clock)
	}
	return g
}

// request is the core throttle/retry loop implementing spec.md §4.1's
// protocol exactly, one HTTP round-trip (plus at most one retry) per call.
func (g *Gateway) request(ctx context.Context, method, path, token string, body interface{}, result interface{}) error {
	return g.circuitBreaker.Call(func() error {
		return g.doWithRetry(ctx, method, path, token, body, result)
	})
}

func (g *Gateway) doWithRetry(ctx context.Context, method, path, token string, body interface{}, result interface{}) error {
	resp, bodyBytes, err := g.sendRecording(ctx, method, path, token, body)
	if err != nil {
		return NewHTTPError(err.Error(), err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return decodeInto(bodyBytes, result)

	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.RecordAPIRetry(method, path, "rate_limited")
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		g.clock.Sleep(retryAfter)
		resp2, bodyBytes2, err2 := g.sendRecording(ctx, method, path, token, body)
		if err2 != nil {
			return NewHTTPError(err2.Error(), err2)
		}
		if resp2.StatusCode >= 200 && resp2.StatusCode < 300 {
			return decodeInto(bodyBytes2, result)
		}
		if resp2.StatusCode == http.StatusTooManyRequests {
			return NewTooManyRetriesError()
		}
		return g.classifyNonSuccess(resp2.StatusCode, bodyBytes2)

	case resp.StatusCode == http.StatusInternalServerError:
		metrics.RecordAPIRetry(method, path, "internal_server_error")
		g.clock.Sleep(2 * time.Second)
		resp2, bodyBytes2, err2 := g.sendRecording(ctx, method, path, token, body)
		if err2 != nil {
			return NewHTTPError(err2.Error(), err2)
		}
		if resp2.StatusCode >= 200 && resp2.StatusCode < 300 {
			return decodeInto(bodyBytes2, result)
		}
		if resp2.StatusCode == http.StatusInternalServerError {
			return NewHTTPError("internal server error after retry", nil)
		}
		return g.classifyNonSuccess(resp2.StatusCode, bodyBytes2)

	default:
		return g.classifyNonSuccess(resp.StatusCode, bodyBytes)
	}
}

// sendRecording wraps send with the API transport metrics every call
// (including retries) should report: status code and wall-clock duration.
func (g *Gateway) sendRecording(ctx context.Context, method, path, token string, body interface{}) (*http.Response, []byte, error) {
	start := time.Now()
	resp, bodyBytes, err := g.send(ctx, method, path, token, body)
	duration := time.Since(start).Seconds()
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	metrics.RecordAPIRequest(method, path, status, duration)
	return resp, bodyBytes, err
}

func (g *Gateway) classifyNonSuccess(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return NewUnauthorizedError()
	case http.StatusServiceUnavailable:
		return NewServiceUnavailableError()
	default:
		var env errorEnvelope
		if json.Unmarshal(body, &env) == nil && env.Error.Code != 0 {
			return NewAPIError(env.Error.Code, env.Error.Message)
		}
		return NewHTTPError(fmt.Sprintf("unexpected status %d: %s", status, string(body)), nil)
	}
}

func (g *Gateway) send(ctx context.Context, method, path, token string, body interface{}) (*http.Response, []byte, error) {
	waitStart := time.Now()
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}
	metrics.RecordRateLimitWait(method, path, time.Since(waitStart).Seconds())

	g.mu.Lock()
	defer g.mu.Unlock()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, respBody, nil
}

func decodeInto(body []byte, result interface{}) error {
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		var env errorEnvelope
		if json.Unmarshal(body, &env) == nil && env.Error.Code != 0 {
			return NewAPIError(env.Error.Code, env.Error.Message)
		}
		return NewJSONParseError(string(body), err)
	}
	return nil
}

// parseRetryAfter reads a possibly-fractional seconds value, per spec.md
// §4.1 — the teacher only handled whole seconds via strconv.Atoi.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return time.Second
	}
	seconds, err := strconv.ParseFloat(header, 64)
	if err != nil || seconds < 0 {
		return time.Second
	}
	return time.Duration(seconds * float64(time.Second))
}
