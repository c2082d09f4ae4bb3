package api

// Row is one record of a table endpoint: column key to raw value, exactly
// as decoded from the backend's JSON array. Shape varies by table.
type Row map[string]any

// String returns the string form of a column value, or "" when absent.
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return Stringify(v)
}

// Float returns a column value as a float64 when it is numeric.
func (r Row) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Holding is one position row from GET /api/portfolio.
type Holding struct {
	Ticker             string  `json:"ticker"`
	Name               string  `json:"name"`
	Quantity           float64 `json:"quantity"`
	AvgBuyPrice        float64 `json:"avg_buy_price"`
	CurrentPrice       float64 `json:"current_price"`
	MarketValue        float64 `json:"market_value"`
	UnrealizedGainLoss float64 `json:"unrealized_gain_loss"`
	PercentChange      float64 `json:"percent_change"`
}

// HistoryPoint is one sample from GET /api/portfolio/history.
type HistoryPoint struct {
	Timestamp   string  `json:"timestamp"`
	MarketValue float64 `json:"market_value"`
}

// Trade is one execution row from GET /api/portfolio/trades.
type Trade struct {
	ID         string  `json:"id"`
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name"`
	Side       string  `json:"side"`
	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`
	ExecutedAt string  `json:"executed_at"`
}

// WatchlistItem is one row from GET /api/portfolio/watchlist.
type WatchlistItem struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	LatestPrice float64 `json:"latest_price"`
}

// SyncResponse is the body of POST /api/portfolio/sync.
type SyncResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
