package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathPortfolio, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"ticker":"AAPL","name":"Apple Inc.","quantity":10,"avg_buy_price":150.0,
			 "current_price":170.0,"market_value":1700.0,"unrealized_gain_loss":200.0,
			 "percent_change":13.33}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	holdings, err := client.Portfolio(context.Background())
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "AAPL", holdings[0].Ticker)
	assert.Equal(t, 1700.0, holdings[0].MarketValue)
}

func TestPortfolio_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Portfolio(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "rate limited", apiErr.Message)
	assert.Equal(t, "rate limited", apiErr.Error())
}

func TestPortfolio_UnexpectedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Portfolio(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestHistory_QueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathHistory, r.URL.Path)
		assert.Equal(t, "day", r.URL.Query().Get("span"))
		assert.Equal(t, "5minute", r.URL.Query().Get("interval"))
		assert.Equal(t, "300", r.URL.Query().Get("max_points"))
		_, _ = w.Write([]byte(`[
			{"timestamp":"2025-06-02T14:30:00Z","market_value":100.0},
			{"timestamp":"2025-06-02T14:35:00Z","market_value":101.5}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	points, err := client.History(context.Background(), "day", "5minute", 300)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 101.5, points[1].MarketValue)
}

func TestTrades_FastAPIDetailError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"robinhood session expired"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Trades(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "robinhood session expired", apiErr.Message)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestRows_EmptyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	rows, err := client.Rows(context.Background(), PathWatchlist)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRows_RawValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"ticker":"VTI","quantity":2.5,"name":null}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	rows, err := client.Rows(context.Background(), PathPortfolio)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "VTI", rows[0].String("ticker"))
	assert.Equal(t, "2.5", rows[0].String("quantity"))
	// Absent and null keys both render empty.
	assert.Equal(t, "", rows[0].String("name"))
	assert.Equal(t, "", rows[0].String("missing"))

	qty, ok := rows[0].Float("quantity")
	require.True(t, ok)
	assert.Equal(t, 2.5, qty)
}

func TestSync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathSync, r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"Manual sync started"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	msg, err := client.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Manual sync started", msg)
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","time":"2025-06-02T14:30:00"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	hr, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", hr.Status)
}

func TestAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	_, err := client.Watchlist(context.Background())
	require.NoError(t, err)
}

func TestNoAuthHeaderWhenTokenEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Watchlist(context.Background())
	require.NoError(t, err)
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "")
	_, err := client.Portfolio(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "AAPL", Stringify("AAPL"))
	assert.Equal(t, "1700", Stringify(1700.0))
	assert.Equal(t, "13.33", Stringify(13.33))
	assert.Equal(t, "true", Stringify(true))
}
