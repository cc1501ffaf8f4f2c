// Package remote is the JSON-over-HTTP client shared by every optional
// collaborator (carbon predictor, fit engine, alternative engine).
// Each call carries its own deadline and retries transient failures with
// exponential backoff inside that deadline.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/greenroute/internal/domain"
)

const maxResponseBytes = 4 << 20

// StatusError is returned when the collaborator answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Config describes one collaborator endpoint.
type Config struct {
	// BaseURL is the collaborator root, e.g. "https://predictor.internal".
	BaseURL string

	// Token, when set, is sent as "Authorization: Bearer <token>".
	Token string

	// Timeout bounds a whole call, retries included.
	Timeout time.Duration

	// MaxRetries is the number of extra attempts after the first. Zero disables retry.
	MaxRetries uint64

	// Backoff is the first retry delay; it doubles on each attempt. Defaults to 200ms.
	Backoff time.Duration
}

// Client posts JSON to a single collaborator.
type Client struct {
	cfg  Config
	http *http.Client
}

// New builds a Client. A nil httpClient means http.DefaultClient.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 200 * time.Millisecond
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: httpClient}
}

// Enabled reports whether the client has somewhere to send requests.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.BaseURL != ""
}

// PostJSON sends in as JSON to BaseURL+path and decodes the response into out.
// 429, 5xx and network errors are retried. Every failure wraps domain.ErrUnavailable.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	if !c.Enabled() {
		return fmt.Errorf("remote.Client.PostJSON %s: %w: no base url", path, domain.ErrUnavailable)
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("remote.Client.PostJSON %s: encode: %w", path, err)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	backoff := retry.WithMaxRetries(c.cfg.MaxRetries, retry.NewExponential(c.cfg.Backoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, err := c.post(ctx, c.cfg.BaseURL+path, payload)
		if err != nil {
			if retryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remote.Client.PostJSON %s: %w: %w", path, domain.ErrUnavailable, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
