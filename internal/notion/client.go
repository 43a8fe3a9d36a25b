// Package notion talks to the Notion REST API, which is the catalog's record store.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"
	maxPageSize    = 100
)

// Config identifies the database and how to reach it.
type Config struct {
	Token       string
	DatabaseID  string
	Version     string
	BaseURL     string
	PageTimeout time.Duration
	// RequestsPerSecond paces page requests; <= 0 disables pacing.
	RequestsPerSecond float64
	// StatusFilter pushes the publishable-status filter down to the store.
	StatusFilter bool
}

// Missing lists the required settings that are empty.
func (c Config) Missing() []string {
	var out []string
	if strings.TrimSpace(c.Token) == "" {
		out = append(out, "NOTION_TOKEN")
	}
	if strings.TrimSpace(c.DatabaseID) == "" {
		out = append(out, "NOTION_PRODUCTS_DB")
	}
	return out
}

// UpstreamError reports a failed or unreadable store response.
type UpstreamError struct {
	Status  int // 0 when no response was received
	Code    string
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion %d: %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("notion %d: %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg Config, hc *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 10 * time.Second
	}
	if hc == nil {
		hc = &http.Client{}
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		lim = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Client{cfg: cfg, http: hc, limiter: lim}
}

// QueryAll follows the cursor chain until the store reports no more pages
// and returns every row in store order. Pages are fetched one at a time
// because each request needs the previous cursor. Any failed page discards
// what was already collected.
func (c *Client) QueryAll(ctx context.Context, filter *Filter) ([]Page, error) {
	var (
		all    []Page
		cursor string
	)
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := c.queryPage(ctx, queryRequest{StartCursor: cursor, PageSize: maxPageSize, Filter: filter})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)
		if !resp.HasMore {
			return all, nil
		}
		if resp.NextCursor == nil || *resp.NextCursor == "" {
			return nil, &UpstreamError{Status: http.StatusOK, Message: "has_more set without next_cursor"}
		}
		cursor = *resp.NextCursor
	}
}

func (c *Client) queryPage(ctx context.Context, q queryRequest) (*queryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.PageTimeout)
	defer cancel()

	body, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/databases/%s/query", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.DatabaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Notion-Version", c.cfg.Version)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notion query: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("notion read: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		ue := &UpstreamError{Status: res.StatusCode, Message: strings.TrimSpace(string(raw))}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Message != "" {
			ue.Code, ue.Message = er.Code, er.Message
		}
		return nil, ue
	}
	var out queryResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &UpstreamError{Status: res.StatusCode, Message: "malformed payload: " + err.Error()}
	}
	return &out, nil
}

// IsUpstream reports whether err came from the store.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
