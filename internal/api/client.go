// Package api is the HTTP client for the budgeting backend. All decoding of
// backend payloads happens here at the boundary; the rest of the code only
// ever sees typed DTOs and domain models, never raw JSON.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"budgetbook/internal/config"
	"budgetbook/internal/dto"
	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/services"
)

type client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenStore
	limiter        *rate.Limiter
	logger         *slog.Logger
	metrics        services.MetricsRecorderInterface
	userAgent      string
	retryOnRefresh bool

	mu             sync.Mutex
	onForcedLogout func()
}

// NewClient creates a new ClientInterface instance
func NewClient(cfg *config.Config, tokens TokenStore, metrics services.MetricsRecorderInterface, logger *slog.Logger) ClientInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &client{
		baseURL: cfg.API.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		tokens:         tokens,
		limiter:        rate.NewLimiter(rate.Limit(cfg.Client.RequestsPerSecond), cfg.Client.RequestBurst),
		logger:         logger,
		metrics:        metrics,
		userAgent:      cfg.Client.UserAgent,
		retryOnRefresh: cfg.API.RetryOnRefresh,
	}
}

func (c *client) Tokens() TokenStore {
	return c.tokens
}

// SetForcedLogoutHandler registers the callback fired when a token refresh
// fails and the session cannot continue.
func (c *client) SetForcedLogoutHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onForcedLogout = fn
}

func (c *client) forcedLogout() {
	c.mu.Lock()
	fn := c.onForcedLogout
	c.mu.Unlock()

	c.tokens.Clear()
	if c.metrics != nil {
		c.metrics.IncrementCounter("session.forced_logout", nil)
	}
	if fn != nil {
		fn()
	}
}

// refreshAheadWindow is how close to expiry an access token may get before
// it is exchanged up front instead of waiting for a 401.
const refreshAheadWindow = 30 * time.Second

// do runs one request against the backend. Authenticated requests that come
// back 401 trigger exactly one token refresh and one retry; a second 401
// ends the session.
func (c *client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	if authed && c.tokens.RefreshToken() != "" && TokenExpiresWithin(c.tokens.AccessToken(), refreshAheadWindow) {
		// A failed exchange here is not fatal; the 401 path below still
		// gets its one refresh-and-retry.
		_ = c.refresh(ctx)
	}

	status, err := c.doOnce(ctx, method, path, body, out, authed)
	if err == nil {
		return nil
	}

	if authed && c.retryOnRefresh && status == http.StatusUnauthorized {
		if refreshErr := c.refresh(ctx); refreshErr != nil {
			c.forcedLogout()
			return refreshErr
		}
		if _, retryErr := c.doOnce(ctx, method, path, body, out, authed); retryErr != nil {
			if apperrors.StatusOf(retryErr) == http.StatusUnauthorized {
				c.forcedLogout()
			}
			return retryErr
		}
		return nil
	}

	return err
}

func (c *client) doOnce(ctx context.Context, method, path string, body, out any, authed bool) (int, error) {
	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}
	if c.metrics != nil {
		c.metrics.RecordProcessingTime("rate_limiter.wait", time.Since(waitStart))
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.tokens.AccessToken())
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		c.recordRequest(path, method, 0, start)
		return 0, apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	c.recordRequest(path, method, resp.StatusCode, start)
	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 400 {
		return resp.StatusCode, apperrors.NewAPIError(resp.StatusCode, extractDetail(resp.Body))
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, apperrors.NewAPIError(resp.StatusCode, "unexpected response body: "+err.Error())
		}
	}

	return resp.StatusCode, nil
}

// refresh exchanges the refresh token for a new access token. Called with
// the refresh endpoint itself unauthenticated so a stale access token
// cannot poison the exchange.
func (c *client) refresh(ctx context.Context) error {
	refreshToken := c.tokens.RefreshToken()
	if refreshToken == "" {
		c.recordRefresh("missing")
		return &apperrors.APIError{Code: apperrors.AuthMissingToken, StatusCode: http.StatusUnauthorized}
	}

	var tokens dto.TokenResponse
	if _, err := c.doOnce(ctx, http.MethodPost, "/auth/refresh/", dto.RefreshRequest{Refresh: refreshToken}, &tokens, false); err != nil {
		c.recordRefresh("failed")
		c.logger.Warn("token refresh failed", "error", err)
		return &apperrors.APIError{Code: apperrors.AuthRefreshFailed, StatusCode: http.StatusUnauthorized, Message: err.Error()}
	}

	c.tokens.SetAccessToken(tokens.Access)
	if tokens.Refresh != "" {
		c.tokens.SetTokens(tokens.Access, tokens.Refresh)
	}
	c.recordRefresh("success")
	return nil
}

func (c *client) recordRequest(path, method string, status int, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.IncrementCounter("api.request", map[string]string{
		"endpoint": path,
		"method":   method,
		"status":   strconv.Itoa(status),
	})
	c.metrics.RecordProcessingTime(path, time.Since(start))
}

func (c *client) recordRefresh(status string) {
	if c.metrics != nil {
		c.metrics.IncrementCounter("token.refresh", map[string]string{"status": status})
	}
}

// extractDetail pulls the human-readable message out of an error payload.
// The backend uses "detail" for auth errors and "message" elsewhere.
func extractDetail(r io.Reader) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
