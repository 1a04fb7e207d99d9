package tba

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/openscout/frc-sync/internal/platform/logging"
	"github.com/openscout/frc-sync/internal/platform/resilience"
	"github.com/openscout/frc-sync/internal/usecase"
)

const (
	defaultBaseURL   = "https://www.thebluealliance.com/api/v3"
	authKeyHeader    = "X-TBA-Auth-Key"
	maxResponseBytes = 32 << 20
)

var errTBATransient = crerr.New("tba transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	AuthKey        string
	Timeout        time.Duration
	Retry          resilience.RetryPolicy
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to The Blue Alliance read API with conditional GETs.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	authKey        string
	retry          resilience.RetryPolicy
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	retry := resilience.NormalizeRetryPolicy(cfg.Retry)
	retry.Retryable = isTBACircuitFailure

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		authKey:        strings.TrimSpace(cfg.AuthKey),
		retry:          retry,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Fetch issues a conditional GET for one endpoint path. A cached validator
// token is sent as If-None-Match; a 304 comes back as NotModified with no
// body. 429 and 5xx responses are retried, other 4xx propagate immediately.
func (c *Client) Fetch(ctx context.Context, endpoint, cachedETag string) (usecase.FetchResult, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "tba circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
			return usecase.FetchResult{}, fmt.Errorf("%w: tba is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	var result usecase.FetchResult
	err := c.retry.Do(ctx, func() error {
		var reqErr error
		result, reqErr = c.executeRequest(ctx, endpoint, cachedETag)
		if c.circuitEnabled {
			if isTBACircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return reqErr
	})
	if err != nil {
		c.logger.WarnContext(ctx, "tba request failed", "endpoint", endpoint, "error", err)
		return usecase.FetchResult{}, err
	}

	return result, nil
}

func (c *Client) executeRequest(ctx context.Context, endpoint, cachedETag string) (usecase.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return usecase.FetchResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(authKeyHeader, c.authKey)
	if cachedETag != "" {
		req.Header.Set("If-None-Match", cachedETag)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return usecase.FetchResult{}, fmt.Errorf("%w: send request: %s", errTBATransient, sanitizeSensitiveText(err.Error(), c.authKey))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotModified {
		return usecase.FetchResult{NotModified: true}, nil
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if readErr != nil {
		return usecase.FetchResult{}, fmt.Errorf("%w: read response body: %v", errTBATransient, readErr)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return usecase.FetchResult{
			Body: raw,
			ETag: resp.Header.Get("ETag"),
		}, nil
	}

	if isRetryableStatus(resp.StatusCode) {
		return usecase.FetchResult{}, fmt.Errorf("%w: provider status=%d body=%s", errTBATransient, resp.StatusCode, abbreviateBody(raw))
	}
	return usecase.FetchResult{}, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
}

func isTBACircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errTBATransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, authKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || authKey == "" {
		return value
	}
	return strings.ReplaceAll(value, authKey, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
