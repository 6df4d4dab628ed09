package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d: %s", e.URL, e.StatusCode, e.Body)
}

type APIOptions struct {
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
	UserAgent   string
	Logger      *slog.Logger
}

// API is a JSON GET client that retries every failure with a constant delay.
type API struct {
	client      *http.Client
	baseURL     string
	maxAttempts int
	retryDelay  time.Duration
	userAgent   string
	logger      *slog.Logger
}

func NewAPI(baseURL string, opts APIOptions) *API {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		client:      &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxAttempts: attempts,
		retryDelay:  opts.RetryDelay,
		userAgent:   opts.UserAgent,
		logger:      logger,
	}
}

func (a *API) BaseURL() string {
	return a.baseURL
}

// Get fetches baseURL+path and decodes the JSON body into v. Transport
// errors, non-2xx statuses and undecodable bodies are retried up to the
// configured number of attempts; the last error is returned.
func (a *API) Get(ctx context.Context, path string, params url.Values, v any) error {
	if params != nil {
		path += "?" + params.Encode()
	}
	target := a.baseURL + path

	attempt := 0
	operation := func() error {
		attempt++
		return a.getOnce(ctx, target, v)
	}
	notify := func(err error, wait time.Duration) {
		a.logger.Warn("request failed, retrying",
			slog.String("url", target),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", a.maxAttempts),
			slog.Duration("retry_in", wait),
			slog.String("error", err.Error()),
		)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(a.retryDelay), uint64(a.maxAttempts-1)),
		ctx,
	)
	return backoff.RetryNotify(operation, policy, notify)
}

func (a *API) getOnce(ctx context.Context, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{URL: target, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", target, err)
	}
	return nil
}
