// Package api provides a typed client for the portfolio REST backend.
//
// All endpoints return either their payload (usually a JSON array) or a
// structured `{error: ...}` object; callers receive the latter as *APIError
// so the message can be shown to the user verbatim.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Endpoint paths on the backend.
const (
	PathPortfolio = "/api/portfolio"
	PathHistory   = "/api/portfolio/history"
	PathTrades    = "/api/portfolio/trades"
	PathWatchlist = "/api/portfolio/watchlist"
	PathSync      = "/api/portfolio/sync"
	PathHealth    = "/"
)

// Client handles HTTP requests to the portfolio backend.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a new API client for the given base URL. token may be
// empty; hosted deployments front the backend with a bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Portfolio fetches current holdings.
func (c *Client) Portfolio(ctx context.Context) ([]Holding, error) {
	var holdings []Holding
	if err := c.getList(ctx, PathPortfolio, nil, &holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

// History fetches the portfolio value series for a span/interval pair.
// The backend is trusted to return a pre-decimated series of at most
// maxPoints samples.
func (c *Client) History(ctx context.Context, span, interval string, maxPoints int) ([]HistoryPoint, error) {
	params := map[string]string{
		"span":     span,
		"interval": interval,
	}
	if maxPoints > 0 {
		params["max_points"] = strconv.Itoa(maxPoints)
	}
	var points []HistoryPoint
	if err := c.getList(ctx, PathHistory, params, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Trades fetches the trade log, newest first.
func (c *Client) Trades(ctx context.Context) ([]Trade, error) {
	var trades []Trade
	if err := c.getList(ctx, PathTrades, nil, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// Watchlist fetches watched symbols with their latest prices.
func (c *Client) Watchlist(ctx context.Context) ([]WatchlistItem, error) {
	var items []WatchlistItem
	if err := c.getList(ctx, PathWatchlist, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Rows fetches a table endpoint as raw column-keyed rows. Used by the
// generic polling table, which carries no schema beyond its column keys.
func (c *Client) Rows(ctx context.Context, path string) ([]Row, error) {
	var rows []Row
	if err := c.getList(ctx, path, nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// Sync triggers a manual backend sync and returns the backend's message.
func (c *Client) Sync(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodPost, PathSync, nil)
	if err != nil {
		return "", err
	}
	var sr SyncResponse
	if err := json.Unmarshal(body, &sr); err != nil || sr.Message == "" {
		return "", ErrUnexpectedResponse
	}
	return sr.Message, nil
}

// Health checks the backend root endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	body, err := c.do(ctx, http.MethodGet, PathHealth, nil)
	if err != nil {
		return nil, err
	}
	var hr HealthResponse
	if err := json.Unmarshal(body, &hr); err != nil || hr.Status == "" {
		return nil, ErrUnexpectedResponse
	}
	return &hr, nil
}

// getList fetches path and decodes the array-or-error payload union:
// a JSON array is decoded into target, an object with an error field
// becomes *APIError, anything else ErrUnexpectedResponse.
func (c *Client) getList(ctx context.Context, path string, params map[string]string, target any) error {
	if len(params) > 0 {
		query := url.Values{}
		for k, v := range params {
			query.Set(k, v)
		}
		path = path + "?" + query.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") {
		if apiErr := parseAPIError(http.StatusOK, body); apiErr != nil {
			return apiErr
		}
		return ErrUnexpectedResponse
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// do performs a request and returns the response body. Non-2xx responses
// are mapped to *APIError when the body carries a structured error.
func (c *Client) do(ctx context.Context, method, path string, reqBody io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if apiErr := parseAPIError(resp.StatusCode, body); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("API error: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// Stringify renders a raw JSON value the way the table search and cells
// see it: numbers without a trailing exponent, null as the empty string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
