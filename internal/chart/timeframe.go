package chart

// Timeframe selects a history granularity: a backend span paired with the
// sampling interval the backend should decimate to.
type Timeframe struct {
	Label    string
	Span     string
	Interval string
}

// Timeframes is the fixed set offered by the dashboard, coarsest last.
// Exactly one is selected at a time.
var Timeframes = []Timeframe{
	{Label: "1D", Span: "day", Interval: "5minute"},
	{Label: "1W", Span: "week", Interval: "hour"},
	{Label: "1M", Span: "month", Interval: "day"},
	{Label: "3M", Span: "3month", Interval: "day"},
	{Label: "1Y", Span: "year", Interval: "week"},
	{Label: "ALL", Span: "all", Interval: "week"},
}
