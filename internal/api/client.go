// Package api is a meeting.Store backed by the mini-app REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

const (
	// MeetingsPath is the collection endpoint.
	MeetingsPath = "/api/miniapp/meetings"
	// InitDataHeader carries the opaque client credential.
	InitDataHeader = "X-Telegram-Init-Data"
	// TelegramIDParam is the fallback credential when no init data exists.
	TelegramIDParam = "telegramId"

	defaultTimeout = 15 * time.Second
	maxErrorBody   = 4 << 10
)

// ErrNotConfigured is returned when no base URL is set.
var ErrNotConfigured = fmt.Errorf("%w: API base URL is not configured", meeting.ErrNetwork)

// Credentials identify the user to the API. They are forwarded unchanged.
type Credentials struct {
	InitData   string
	TelegramID int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// Client talks to the meetings API.
type Client struct {
	baseURL string
	creds   Credentials
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns meetings overlapping the days from..to (inclusive). An
// undecodable entry fails the whole list.
func (c *Client) List(ctx context.Context, from, to time.Time) ([]meeting.Meeting, error) {
	q := url.Values{}
	q.Set("from", dateutil.FormatDate(from))
	q.Set("to", dateutil.FormatDate(to))

	var body []MeetingJSON
	if err := c.do(ctx, http.MethodGet, MeetingsPath, q, nil, &body); err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}

	out := make([]meeting.Meeting, 0, len(body))
	for _, w := range body {
		m, err := w.Meeting()
		if err != nil {
			c.log.Warn().Err(err).Str("meeting", w.ID).Msg("malformed meeting in list")
			return nil, fmt.Errorf("listing meetings: %w: meeting %q: %v", meeting.ErrStore, w.ID, err)
		}
		out = append(out, m)
	}
	meeting.SortByStart(out)
	return out, nil
}

// Create posts a new meeting.
func (c *Client) Create(ctx context.Context, d meeting.Draft) (*meeting.Meeting, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var body MeetingJSON
	if err := c.do(ctx, http.MethodPost, MeetingsPath, nil, FromDraft(d), &body); err != nil {
		return nil, fmt.Errorf("creating meeting: %w", err)
	}
	m, err := body.Meeting()
	if err != nil {
		return nil, fmt.Errorf("%w: decoding created meeting: %v", meeting.ErrStore, err)
	}
	return &m, nil
}

// Update patches the non-nil fields of p.
func (c *Client) Update(ctx context.Context, id string, p meeting.Patch) error {
	if p.IsEmpty() {
		return meeting.ErrEmptyPatch
	}
	if err := c.do(ctx, http.MethodPatch, meetingPath(id), nil, FromPatch(p), nil); err != nil {
		return fmt.Errorf("updating meeting %s: %w", id, err)
	}
	return nil
}

// Delete cancels a meeting.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, meetingPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting meeting %s: %w", id, err)
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func meetingPath(id string) string {
	return MeetingsPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}

	if q == nil {
		q = url.Values{}
	}
	if c.creds.InitData == "" && c.creds.TelegramID > 0 {
		q.Set(TelegramIDParam, strconv.FormatInt(c.creds.TelegramID, 10))
	}
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", meeting.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds.InitData != "" {
		req.Header.Set(InitDataHeader, c.creds.InitData)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", meeting.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return meeting.ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &meeting.StoreError{Status: resp.StatusCode, Body: string(text)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", meeting.ErrStore, err)
	}
	return nil
}

var _ meeting.Store = (*Client)(nil)
