package omni

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/omnivet-cli/internal/core/ports/driven"
	"github.com/custodia-labs/omnivet-cli/internal/logger"
)

const (
	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries, doubled per attempt.
	RetryDelay = time.Second

	// maxErrorBody caps how much of an error response body is kept.
	maxErrorBody = 2048
)

// Ensure Client implements the driven port.
var _ driven.ValidatorAPI = (*Client)(nil)

// retryBaseDelay seeds the backoff schedule. Overridable in tests.
var retryBaseDelay = RetryDelay

// Client is an HTTP client for the Omni API.
type Client struct {
	cfg         Config
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a client for one deployment. The configuration is
// validated lazily on first request, not here.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:         cfg.withDefaults(),
		rateLimiter: NewRateLimiter(),
	}
}

// Config returns the effective configuration, defaults applied.
func (c *Client) Config() Config {
	return c.cfg
}

// ensureClient initializes the HTTP client if not already done.
// Standard Bearer auth goes through oauth2's token transport; custom
// header/scheme layouts fall back to a per-request header.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.httpClient != nil {
		return nil
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	if c.cfg.usesBearerAuth() {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: c.cfg.APIKey},
		)
		tc := oauth2.NewClient(ctx, ts)
		tc.Timeout = c.cfg.Timeout
		c.httpClient = tc
		return nil
	}

	c.httpClient = &http.Client{Timeout: c.cfg.Timeout}
	return nil
}

// FetchValidation retrieves the content-validator payload for the
// configured model, optionally scoped to a branch and user.
func (c *Client) FetchValidation(ctx context.Context, branchID string) (any, error) {
	params := url.Values{}
	if c.cfg.UserID != "" {
		params.Set("userId", c.cfg.UserID)
	}
	if branchID != "" {
		params.Set("branch_id", branchID)
	}

	var payload any
	path := fmt.Sprintf("/api/v1/models/%s/content-validator", c.cfg.ModelID)
	if err := c.getJSON(ctx, path, params, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// endpoint joins the base URL with an API path.
func (c *Client) endpoint(path string) string {
	return c.cfg.BaseURL + path
}

// getJSON performs a GET against the API path and decodes the JSON
// response into out. Transient failures are retried with backoff,
// honouring Retry-After on 429.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}

	requestURL := c.endpoint(path)
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		delay, err := c.doOnce(ctx, requestURL, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == MaxRetries {
			return err
		}
		if delay <= 0 {
			delay = retryBaseDelay << attempt
		}
		logger.Debug("omni: retrying %s in %s after: %v", requestURL, delay, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}

// doOnce performs a single request attempt. The returned duration is a
// server-requested backoff, nonzero only on rate-limited responses.
func (c *Client) doOnce(ctx context.Context, requestURL string, out any) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if !c.cfg.usesBearerAuth() {
		req.Header.Set(c.cfg.AuthHeader, c.cfg.authValue())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request %s: %w", requestURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			URL:        requestURL,
		}
		return retryAfter(resp), apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	return 0, nil
}
