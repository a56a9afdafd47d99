// Package report delivers the one-shot session completion report to the
// external rewards service over its REST API.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Completion is the wire body posted when a session ends.
type Completion struct {
	SessionID         string `json:"session_id"`
	Score             int    `json:"score"`
	TimePlayedSeconds int    `json:"time_played_seconds"`
}

// Ack is the service's acknowledgement, shown to the player verbatim.
type Ack struct {
	Message string `json:"message"`
}

// Config holds rewards service connection settings.
type Config struct {
	// BaseURL of the rewards service. Empty disables delivery entirely.
	BaseURL string

	// Token is attached as a bearer credential when set.
	Token string

	// Timeout bounds each individual HTTP attempt.
	Timeout time.Duration

	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:     3 * time.Second,
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     4 * time.Second,
		Multiplier:  2.0,
	}
}

// ConfigFromEnv builds a Config from FINZO_REPORT_* variables, starting
// from defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("FINZO_REPORT_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FINZO_REPORT_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("FINZO_REPORT_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	return cfg
}

// Client posts completion reports with bounded retries. It satisfies the
// engine's Reporter interface.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a rewards service client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = DefaultConfig().Multiplier
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Send delivers one completion report. Transient failures (network, 5xx,
// 429) are retried with exponential backoff and jitter until MaxAttempts
// or context expiry; 4xx rejections fail immediately.
func (c *Client) Send(ctx context.Context, sessionID string, score, timePlayedSeconds int) (string, error) {
	if c.cfg.BaseURL == "" {
		return "", errors.New("rewards service URL not configured")
	}

	body, err := json.Marshal(Completion{
		SessionID:         sessionID,
		Score:             score,
		TimePlayedSeconds: timePlayedSeconds,
	})
	if err != nil {
		return "", fmt.Errorf("encode completion: %w", err)
	}

	var lastErr error
	for attempt := range c.cfg.MaxAttempts {
		ack, err := c.post(ctx, body)
		if err == nil {
			return ack, nil
		}
		lastErr = err

		if !retryable(err) {
			return "", err
		}
		if attempt == c.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.backoff(attempt, err)):
		}
	}

	return "", lastErr
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &ErrRateLimited{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return "", &ErrServiceUnavailable{Status: resp.StatusCode}
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &ErrRejected{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var ack Ack
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("decode acknowledgement: %w", err)
	}
	return ack.Message, nil
}

// retryable reports whether an attempt failure is worth another try.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rejected *ErrRejected
	if errors.As(err, &rejected) {
		return false
	}
	// Rate limits, 5xx, and network errors are transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (c *Client) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimited
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(c.cfg.InitialWait) * math.Pow(c.cfg.Multiplier, float64(attempt))
	if wait > float64(c.cfg.MaxWait) {
		wait = float64(c.cfg.MaxWait)
	}

	// Add ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
