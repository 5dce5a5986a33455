package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrRejected reports a request the server refused up front (422).
var ErrRejected = errors.New("search rejected")

// Client talks to a logtap server.
type Client struct {
	http *resty.Client
}

// Query mirrors the /logs query parameters.
type Query struct {
	File     string
	Total    int64
	Keywords []string
}

// Health is the /healthz response payload.
type Health struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// New builds a client for the server at base, which may be a bare
// host:port.
func New(base string) (*Client, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return nil, errors.New("server address is empty")
	}
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse server address: %w", err)
	}
	// No client timeout: a /logs response streams for as long as the
	// server has matches and the caller keeps reading.
	return &Client{http: resty.New().SetBaseURL(base)}, nil
}

// Logs streams the matched lines for q into w and returns the byte count
// written. A 422 surfaces as ErrRejected carrying the server's reason.
func (c *Client) Logs(ctx context.Context, q Query, w io.Writer) (int64, error) {
	values := url.Values{}
	values.Set("file", q.File)
	values.Set("total", strconv.FormatInt(q.Total, 10))
	for _, kw := range q.Keywords {
		values.Add("keywords", kw)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetQueryParamsFromValues(values).
		Get("/logs")
	if err != nil {
		return 0, fmt.Errorf("request logs: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != 200 {
		reason, _ := io.ReadAll(io.LimitReader(body, 4096))
		trimmed := strings.TrimSpace(string(reason))
		if resp.StatusCode() == 422 {
			return 0, fmt.Errorf("%w: %s", ErrRejected, trimmed)
		}
		return 0, fmt.Errorf("server returned status %d: %s", resp.StatusCode(), trimmed)
	}

	written, err := io.Copy(w, body)
	if err != nil {
		return written, fmt.Errorf("stream logs: %w", err)
	}
	return written, nil
}

// Health fetches /healthz.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var health Health
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/healthz")
	if err != nil {
		return Health{}, fmt.Errorf("request health: %w", err)
	}
	if resp.StatusCode() != 200 {
		return Health{}, fmt.Errorf("server returned status %d", resp.StatusCode())
	}
	return health, nil
}
