// internal/evaluator/client.go
//
// HTTP client for the lingo evaluator.
// Responsibilities:
//   - POST /reset and POST /guess with JSON bodies.
//   - Turn non-2xx answers into *RejectedError carrying the server's detail.
//   - Everything else (dial, timeout, undecodable body) is a plain wrapped error,
//     which callers treat as a transport failure.

package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/lingo/internal/api"
)

// maxBody bounds how much of a response is read.
const maxBody = 1 << 20

// RejectedError is a non-2xx answer from the evaluator.
type RejectedError struct {
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("evaluator answered %d: %s", e.Status, e.Detail)
}

// Client talks to one evaluator base URL. Safe for concurrent use.
type Client struct {
	base    string
	hc      *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds each request, including reading the body. Default 10s.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// New returns a Client for baseURL (e.g. "http://localhost:8000").
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("evaluator url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("evaluator url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		timeout: 10 * time.Second,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout <= 0 {
		return nil, fmt.Errorf("evaluator timeout must be positive, got %s", c.timeout)
	}
	c.hc = &http.Client{Timeout: c.timeout}
	return c, nil
}

// Reset asks for a new round, replacing req.SessionID if set.
func (c *Client) Reset(ctx context.Context, req api.ResetRequest) (*api.GameStatus, error) {
	if req.OldWords == nil {
		req.OldWords = []string{}
	}
	var out api.GameStatus
	if err := c.do(ctx, http.MethodPost, "/reset", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Guess submits one guess.
func (c *Client) Guess(ctx context.Context, req api.GuessRequest) (*api.GuessResponse, error) {
	var out api.GuessResponse
	if err := c.do(ctx, http.MethodPost, "/guess", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("evaluator request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", res.StatusCode).
		Dur("took", time.Since(start)).
		Msg("evaluator")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &RejectedError{Status: res.StatusCode, Detail: detail(res.StatusCode, raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// detail extracts a readable reason from an error body. Besides
// {"detail": "..."} it copes with validation errors whose detail is a list.
func detail(status int, raw []byte) string {
	var e struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &e) == nil && len(e.Detail) > 0 {
		var s string
		if json.Unmarshal(e.Detail, &s) == nil && s != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(e.Detail, &items) == nil && len(items) > 0 {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	return http.StatusText(status)
}

// IsRejected reports whether err is an evaluator rejection and returns it.
func IsRejected(err error) (*RejectedError, bool) {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
