package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foliodash/folio/internal/api"
	"github.com/foliodash/folio/internal/cache"
	"github.com/foliodash/folio/internal/config"
)

// View identifies the active screen.
type View int

const (
	ViewOverview View = iota
	ViewPortfolio
	ViewTrades
	ViewWatchlist
)

var viewNames = []string{"Overview", "Portfolio", "Trades", "Watchlist"}

// Model is the root dashboard model. Every widget keeps polling while
// the dashboard runs, whichever view is on screen, so switching back to a
// view never shows stale data.
type Model struct {
	cfg    *config.Config
	client *api.Client
	logger *slog.Logger

	view   View
	width  int
	height int
	ready  bool
	status string

	history    *HistoryModel
	diversityW *DiversityModel
	profile    *ProfileModel
	portfolio  *TableModel
	trades     *TableModel
	watchlist  *TableModel
}

// New assembles the dashboard from its configuration and shared clients.
func New(cfg *config.Config, client *api.Client, store *cache.Store, logger *slog.Logger) Model {
	return Model{
		cfg:    cfg,
		client: client,
		logger: logger,
		history: NewHistory(client, store, logger,
			cfg.HistoryCacheTTL(), cfg.HistoryRefresh(), cfg.HistoryMaxPoints),
		diversityW: NewDiversity(client, cfg.OtherThresholdPct, cfg.DiversityRefresh()),
		profile:    NewProfile(cfg.Profile),
		portfolio: NewTable("portfolio", "Portfolio", api.PathPortfolio,
			client, cfg.TableRefresh(), cfg.TablePageSize, portfolioColumns()),
		trades: NewTable("trades", "Trades", api.PathTrades,
			client, cfg.TableRefresh(), cfg.TablePageSize, tradeColumns()),
		watchlist: NewTable("watchlist", "Watchlist", api.PathWatchlist,
			client, cfg.TableRefresh(), cfg.TablePageSize, watchlistColumns()),
	}
}

func portfolioColumns() []Column {
	currency := func(key string) func(api.Row) string {
		return func(r api.Row) string {
			v, ok := r.Float(key)
			if !ok {
				return ""
			}
			return FormatCurrency(v)
		}
	}
	return []Column{
		{Title: "Ticker", Key: "ticker", Width: 8},
		{Title: "Name", Key: "name", Width: 22},
		{Title: "Qty", Key: "quantity", Width: 10, Align: lipgloss.Right, Render: func(r api.Row) string {
			v, _ := r.Float("quantity")
			return FormatQuantity(v)
		}},
		{Title: "Avg Cost", Key: "avg_buy_price", Width: 11, Align: lipgloss.Right, Render: currency("avg_buy_price")},
		{Title: "Price", Key: "current_price", Width: 11, Align: lipgloss.Right, Render: currency("current_price")},
		{Title: "Value", Key: "market_value", Width: 13, Align: lipgloss.Right, Render: currency("market_value")},
		{Title: "Gain", Key: "unrealized_gain_loss", Width: 13, Align: lipgloss.Right, Signed: true,
			Render: func(r api.Row) string {
				v, _ := r.Float("unrealized_gain_loss")
				return FormatSignedCurrency(v)
			}},
		{Title: "Change", Key: "percent_change", Width: 9, Align: lipgloss.Right, Signed: true,
			Render: func(r api.Row) string {
				v, _ := r.Float("percent_change")
				return FormatSignedPercent(v)
			}},
	}
}

func tradeColumns() []Column {
	return []Column{
		{Title: "Ticker", Key: "ticker", Width: 8},
		{Title: "Name", Key: "name", Width: 22},
		{Title: "Side", Key: "side", Width: 5, Render: func(r api.Row) string {
			return strings.ToUpper(r.String("side"))
		}},
		{Title: "Qty", Key: "quantity", Width: 10, Align: lipgloss.Right, Render: func(r api.Row) string {
			v, _ := r.Float("quantity")
			return FormatQuantity(v)
		}},
		{Title: "Price", Key: "price", Width: 11, Align: lipgloss.Right, Render: func(r api.Row) string {
			v, ok := r.Float("price")
			if !ok {
				return ""
			}
			return FormatCurrency(v)
		}},
		{Title: "Executed", Key: "executed_at", Width: 12, Render: func(r api.Row) string {
			return formatEventTime(r.String("executed_at"))
		}},
	}
}

func watchlistColumns() []Column {
	return []Column{
		{Title: "Symbol", Key: "symbol", Width: 8},
		{Title: "Name", Key: "name", Width: 28},
		{Title: "Last", Key: "latest_price", Width: 11, Align: lipgloss.Right, Render: func(r api.Row) string {
			v, ok := r.Float("latest_price")
			if !ok {
				return ""
			}
			return FormatCurrency(v)
		}},
	}
}

// Init starts every widget's polling loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.history.Init(),
		m.diversityW.Init(),
		m.portfolio.Init(),
		m.trades.Init(),
		m.watchlist.Init(),
	)
}

// Update routes messages. Keys go through the global bindings and then to
// the active view only; everything else fans out to all widgets so
// background views keep refreshing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case syncDoneMsg:
		if msg.err != nil {
			m.status = "sync failed: " + msg.err.Error()
		} else {
			m.status = msg.message
		}
		return m, tea.Batch(
			m.portfolio.Refresh(),
			m.trades.Refresh(),
			m.watchlist.Refresh(),
			m.diversityW.Refresh(),
			m.history.Refresh(),
		)
	}

	return m, m.fanOut(msg)
}

func (m *Model) fanOut(msg tea.Msg) tea.Cmd {
	return tea.Batch(
		m.history.Update(msg),
		m.diversityW.Update(msg),
		m.portfolio.Update(msg),
		m.trades.Update(msg),
		m.watchlist.Update(msg),
	)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A focused search box swallows everything except its own controls.
	if m.activeTable() != nil && m.activeTable().searching {
		return m, m.activeTable().Update(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "1", "2", "3", "4":
		next := View(int(msg.String()[0] - '1'))
		if next != m.view && m.view == ViewOverview {
			m.diversityW.ClearInteraction()
		}
		m.view = next
		return m, nil
	case "r":
		m.status = ""
		return m, m.refreshActive()
	case "S":
		m.status = "syncing..."
		return m, m.syncCmd()
	case "p":
		if m.view == ViewOverview {
			m.profile.Flip()
			return m, nil
		}
	}

	switch m.view {
	case ViewOverview:
		return m, tea.Batch(m.history.Update(msg), m.diversityW.Update(msg))
	default:
		return m, m.activeTable().Update(msg)
	}
}

func (m Model) activeTable() *TableModel {
	switch m.view {
	case ViewPortfolio:
		return m.portfolio
	case ViewTrades:
		return m.trades
	case ViewWatchlist:
		return m.watchlist
	}
	return nil
}

func (m Model) refreshActive() tea.Cmd {
	if t := m.activeTable(); t != nil {
		return t.Refresh()
	}
	return tea.Batch(m.history.Refresh(), m.diversityW.Refresh())
}

func (m Model) syncCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		message, err := client.Sync(ctx)
		if err != nil {
			return syncDoneMsg{err: err}
		}
		return syncDoneMsg{message: message}
	}
}

// layout distributes the window between the overview widgets.
func (m *Model) layout() {
	content := m.width - 4
	if content < 60 {
		content = 60
	}
	profileWidth := 32
	m.profile.SetSize(profileWidth)
	m.history.SetSize(content-profileWidth-2, m.height/2)
	m.diversityW.SetSize(content)
}

// View renders the header tabs, the active view, and the key footer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView() + "\n\n")

	switch m.view {
	case ViewOverview:
		top := lipgloss.JoinHorizontal(lipgloss.Top, m.profile.View(), "  ", m.history.View())
		b.WriteString(top + "\n\n")
		b.WriteString(m.diversityW.View() + "\n")
	case ViewPortfolio:
		b.WriteString(m.portfolio.View() + "\n")
	case ViewTrades:
		b.WriteString(m.trades.View() + "\n")
	case ViewWatchlist:
		b.WriteString(m.watchlist.View() + "\n")
	}

	b.WriteString("\n" + m.footerView())
	return ContentStyle.Render(b.String())
}

func (m Model) headerView() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		if View(i) == m.view {
			tabs[i] = HeaderStyle.Render(name)
		} else {
			tabs[i] = DescStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) footerView() string {
	keys := []string{
		KeyStyle.Render("1-4") + DescStyle.Render(" views"),
		KeyStyle.Render("r") + DescStyle.Render(" refresh"),
		KeyStyle.Render("S") + DescStyle.Render(" sync"),
	}
	switch m.view {
	case ViewOverview:
		keys = append(keys,
			KeyStyle.Render("[/]") + DescStyle.Render(" timeframe"),
			KeyStyle.Render("←/→") + DescStyle.Render(" inspect"),
			KeyStyle.Render("↑/↓") + DescStyle.Render(" slices"),
			KeyStyle.Render("p") + DescStyle.Render(" profile"),
		)
	default:
		keys = append(keys,
			KeyStyle.Render("/") + DescStyle.Render(" search"),
			KeyStyle.Render("←/→") + DescStyle.Render(" pages"),
		)
	}
	keys = append(keys, KeyStyle.Render("q")+DescStyle.Render(" quit"))

	line := strings.Join(keys, "  ")
	if m.status != "" {
		style := DescStyle
		if strings.HasPrefix(m.status, "sync failed") {
			style = ErrorStyle
		} else if strings.HasSuffix(m.status, "...") {
			style = WarningStyle
		}
		line += "\n" + style.Render(m.status)
	}
	return line
}
