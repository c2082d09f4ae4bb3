package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foliodash/folio/internal/api"
	"github.com/foliodash/folio/internal/cache"
	"github.com/foliodash/folio/internal/chart"
)

// debounceDelay absorbs rapid timeframe flipping so only the timeframe the
// user settles on is actually fetched.
const debounceDelay = 75 * time.Millisecond

const axisGutter = 11

// HistoryModel renders the portfolio value chart with switchable
// timeframes. Fetches are debounced and cancel-superseded; fresh cache
// hits render immediately without a request. A failed refresh keeps the
// chart that is already on screen and is only logged.
type HistoryModel struct {
	client    *api.Client
	store     *cache.Store
	logger    *slog.Logger
	ttl       time.Duration
	refresh   time.Duration
	maxPoints int

	tfIdx  int
	series chart.Series
	cursor int // point index under inspection, -1 for latest

	gen     int
	cancel  context.CancelFunc
	loading bool
	spinner spinner.Model

	width  int
	height int
}

// NewHistory creates the history chart widget.
func NewHistory(client *api.Client, store *cache.Store, logger *slog.Logger, ttl, refresh time.Duration, maxPoints int) *HistoryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return &HistoryModel{
		client:    client,
		store:     store,
		logger:    logger,
		ttl:       ttl,
		refresh:   refresh,
		maxPoints: maxPoints,
		cursor:    -1,
		loading:   true,
		spinner:   s,
		width:     60,
		height:    10,
	}
}

// SetSize sets the space available to the whole widget including its
// header and footer lines.
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Timeframe returns the currently selected timeframe.
func (m *HistoryModel) Timeframe() chart.Timeframe {
	return chart.Timeframes[m.tfIdx]
}

// Init loads the cache if fresh, then starts the first fetch and the
// refresh timer.
func (m *HistoryModel) Init() tea.Cmd {
	m.loadCached()
	m.gen++
	return tea.Batch(m.spinner.Tick, m.startFetch(m.gen), m.tickCmd())
}

// Refresh forces an immediate re-fetch of the current timeframe.
func (m *HistoryModel) Refresh() tea.Cmd {
	m.abortInFlight()
	m.gen++
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.startFetch(m.gen))
}

// loadCached renders a fresh cache entry for the current timeframe, if
// one exists. Reports whether it did.
func (m *HistoryModel) loadCached() bool {
	tf := m.Timeframe()
	entry, ok := m.store.Get(cache.HistoryKey(tf.Span, tf.Interval), m.ttl)
	if !ok {
		return false
	}
	var points []api.HistoryPoint
	if err := json.Unmarshal(entry.Data, &points); err != nil {
		return false
	}
	m.series = chart.BuildSeries(points)
	m.cursor = -1
	m.loading = false
	return true
}

func (m *HistoryModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return historyTickMsg{}
	})
}

func (m *HistoryModel) debounceCmd(gen int) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return historyDebounceMsg{gen: gen}
	})
}

// startFetch issues the request for the current timeframe and caches the
// result on success. The context is retained so a newer request can abort
// this one.
func (m *HistoryModel) startFetch(gen int) tea.Cmd {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	m.cancel = cancel

	client, store := m.client, m.store
	tf := m.Timeframe()
	maxPoints := m.maxPoints
	return func() tea.Msg {
		defer cancel()
		points, err := client.History(ctx, tf.Span, tf.Interval, maxPoints)
		if err != nil {
			return historyErrMsg{gen: gen, err: err}
		}
		// A failed cache write is survivable; the fetch still succeeded.
		_ = store.Put(cache.HistoryKey(tf.Span, tf.Interval), points)
		return historyDataMsg{gen: gen, timeframe: tf, points: points}
	}
}

func (m *HistoryModel) abortInFlight() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// selectTimeframe switches the chart to the timeframe at idx. The
// in-flight request, if any, is aborted first. A fresh cache entry
// renders immediately but is only a first paint: the real fetch still
// follows after the debounce window, so rapid flipping only fetches the
// final choice.
func (m *HistoryModel) selectTimeframe(idx int) tea.Cmd {
	if idx == m.tfIdx {
		return nil
	}
	m.abortInFlight()
	m.tfIdx = idx
	m.cursor = -1
	m.gen++

	if !m.loadCached() {
		m.loading = true
		return tea.Batch(m.spinner.Tick, m.debounceCmd(m.gen))
	}
	return m.debounceCmd(m.gen)
}

// Update handles chart messages and navigation.
func (m *HistoryModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case historyTickMsg:
		m.abortInFlight()
		m.gen++
		return tea.Batch(m.startFetch(m.gen), m.tickCmd())

	case historyDebounceMsg:
		if msg.gen != m.gen {
			return nil
		}
		return m.startFetch(msg.gen)

	case historyDataMsg:
		if msg.gen != m.gen {
			return nil
		}
		m.cancel = nil
		m.loading = false
		m.series = chart.BuildSeries(msg.points)
		// Keep an inspect cursor that still points into the refreshed
		// series instead of yanking it away mid-inspection.
		if m.cursor >= len(m.series.Points) {
			m.cursor = -1
		}
		return nil

	case historyErrMsg:
		if msg.gen != m.gen {
			return nil
		}
		m.cancel = nil
		m.loading = false
		if errors.Is(msg.err, context.Canceled) {
			return nil
		}
		tf := m.Timeframe()
		m.logger.Error("history fetch failed",
			"span", tf.Span, "interval", tf.Interval, "error", msg.err)
		return nil

	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *HistoryModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "]", "t":
		return m.selectTimeframe((m.tfIdx + 1) % len(chart.Timeframes))
	case "[", "T":
		return m.selectTimeframe((m.tfIdx + len(chart.Timeframes) - 1) % len(chart.Timeframes))
	case "left":
		if !m.series.Empty() {
			if m.cursor < 0 {
				m.cursor = len(m.series.Points) - 1
			}
			if m.cursor > 0 {
				m.cursor--
			}
		}
	case "right":
		if !m.series.Empty() && m.cursor >= 0 {
			if m.cursor < len(m.series.Points)-1 {
				m.cursor++
			} else {
				m.cursor = -1
			}
		}
	case "esc":
		m.cursor = -1
	}
	return nil
}

// View renders the metrics header, the timeframe bar, and the chart.
func (m *HistoryModel) View() string {
	var b strings.Builder
	b.WriteString(m.headerView() + "\n")
	b.WriteString(m.timeframeBar() + "\n")

	chartHeight := m.height - 3
	if chartHeight < 3 {
		chartHeight = 3
	}
	chartWidth := m.width - axisGutter
	if chartWidth < 10 {
		chartWidth = 10
	}

	if m.series.Empty() {
		if m.loading {
			b.WriteString(m.spinner.View() + DescStyle.Render("loading history"))
		} else {
			b.WriteString(DescStyle.Render("No history data"))
		}
		return b.String()
	}

	values := make([]float64, len(m.series.Points))
	for i, p := range m.series.Points {
		values[i] = p.Value
	}
	lines := chart.Plot(values, chartWidth, chartHeight, m.cursor)
	lo, hi := chart.PlotDomain(values)

	lineStyle := GainStyle
	if !m.series.Gaining() {
		lineStyle = LossStyle
	}
	for i, line := range lines {
		label := ""
		switch i {
		case 0:
			label = fmt.Sprintf("%*.0f ", axisGutter-1, hi)
		case len(lines) - 1:
			label = fmt.Sprintf("%*.0f ", axisGutter-1, lo)
		default:
			label = strings.Repeat(" ", axisGutter)
		}
		b.WriteString(DescStyle.Render(label) + lineStyle.Render(line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// headerView shows value, change, and change percent for the inspected
// point, or the latest point when no cursor is set.
func (m *HistoryModel) headerView() string {
	title := TitleStyle.Render("Portfolio Value")
	if m.series.Empty() {
		return title
	}

	metrics := m.series.Latest()
	suffix := ""
	if m.cursor >= 0 {
		metrics = m.series.At(m.cursor)
		suffix = DescStyle.Render("  " + m.series.Points[m.cursor].Time.Format("01/02 15:04"))
	}

	style := signStyle(metrics.Change)
	parts := []string{
		title,
		ValueStyle.Render(FormatCurrency(metrics.Value)),
		style.Render(FormatSignedCurrency(metrics.Change)),
		style.Render("(" + FormatSignedPercent(metrics.ChangePct) + ")"),
	}
	line := strings.Join(parts, "  ") + suffix
	if m.loading {
		line += "  " + m.spinner.View()
	}
	return line
}

func (m *HistoryModel) timeframeBar() string {
	parts := make([]string, len(chart.Timeframes))
	for i, tf := range chart.Timeframes {
		if i == m.tfIdx {
			parts[i] = KeyStyle.Render("[" + tf.Label + "]")
		} else {
			parts[i] = DescStyle.Render(" " + tf.Label + " ")
		}
	}
	return strings.Join(parts, " ")
}
