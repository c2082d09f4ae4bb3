package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/foliodash/folio/internal/api"
)

// Column describes one column of a polling table. Render, when set,
// overrides the default raw string rendering of the value under Key.
// Signed columns are colored green or red by the numeric value under Key.
type Column struct {
	Title  string
	Key    string
	Width  int
	Align  lipgloss.Position
	Render func(api.Row) string
	Signed bool
}

// TableModel is a self-refreshing, searchable, paginated table over one
// list endpoint. All three list views (portfolio, trades, watchlist) are
// instances of it with different column sets.
type TableModel struct {
	id      string
	title   string
	path    string
	columns []Column
	client  *api.Client
	refresh time.Duration

	rows     []api.Row
	filtered []api.Row

	gen         int
	loading     bool
	errMsg      string
	lastUpdated time.Time

	searching bool
	search    textinput.Model
	pager     paginator.Model
	spinner   spinner.Model
}

// NewTable creates a polling table for the given endpoint path.
func NewTable(id, title, path string, client *api.Client, refresh time.Duration, pageSize int, columns []Column) *TableModel {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 64
	ti.Width = 30

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = pageSize
	p.SetTotalPages(1)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return &TableModel{
		id:      id,
		title:   title,
		path:    path,
		columns: columns,
		client:  client,
		refresh: refresh,
		loading: true,
		search:  ti,
		pager:   p,
		spinner: s,
	}
}

// Init starts the first fetch and the refresh timer.
func (m *TableModel) Init() tea.Cmd {
	m.gen++
	return tea.Batch(m.spinner.Tick, m.fetchCmd(m.gen), m.tickCmd())
}

// Refresh forces an immediate re-fetch, superseding any in-flight request.
func (m *TableModel) Refresh() tea.Cmd {
	m.gen++
	return m.fetchCmd(m.gen)
}

func (m *TableModel) fetchCmd(gen int) tea.Cmd {
	client, path, id := m.client, m.path, m.id
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		rows, err := client.Rows(ctx, path)
		if err != nil {
			return tableErrMsg{id: id, gen: gen, err: err}
		}
		return tableDataMsg{id: id, gen: gen, rows: rows}
	}
}

func (m *TableModel) tickCmd() tea.Cmd {
	id := m.id
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return tableTickMsg{id: id}
	})
}

// Update handles table messages. Data and error messages from superseded
// fetches are discarded by generation.
func (m *TableModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tableTickMsg:
		if msg.id != m.id {
			return nil
		}
		m.gen++
		return tea.Batch(m.fetchCmd(m.gen), m.tickCmd())

	case tableDataMsg:
		if msg.id != m.id || msg.gen != m.gen {
			return nil
		}
		m.loading = false
		m.errMsg = ""
		m.rows = msg.rows
		m.lastUpdated = time.Now()
		m.applyFilter()
		return nil

	case tableErrMsg:
		if msg.id != m.id || msg.gen != m.gen {
			return nil
		}
		m.loading = false
		m.errMsg = errorMessage(msg.err, m.title)
		m.rows = nil
		m.applyFilter()
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

func (m *TableModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			m.setQuery("")
			return nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.pager.Page = 0
			m.applyFilter()
		}
		return cmd
	}

	switch msg.String() {
	case "/":
		m.searching = true
		return m.search.Focus()
	case "esc":
		if m.search.Value() != "" {
			m.setQuery("")
		}
		return nil
	}

	var cmd tea.Cmd
	m.pager, cmd = m.pager.Update(msg)
	return cmd
}

// setQuery replaces the search query and snaps back to the first page.
// A changed query is the only thing that resets pagination.
func (m *TableModel) setQuery(query string) {
	m.search.SetValue(query)
	m.pager.Page = 0
	m.applyFilter()
}

// applyFilter recomputes the visible rows from the search query. The
// current page is kept so background refreshes are not disruptive; it is
// only clamped when the filtered set shrank below it.
func (m *TableModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if query == "" {
		m.filtered = m.rows
	} else {
		m.filtered = nil
		for _, row := range m.rows {
			if m.rowMatches(row, query) {
				m.filtered = append(m.filtered, row)
			}
		}
	}

	if len(m.filtered) == 0 {
		m.pager.SetTotalPages(1)
	} else {
		m.pager.SetTotalPages(len(m.filtered))
	}
	if m.pager.Page >= m.pager.TotalPages {
		m.pager.Page = m.pager.TotalPages - 1
	}
}

func (m *TableModel) rowMatches(row api.Row, query string) bool {
	for _, col := range m.columns {
		if strings.Contains(strings.ToLower(row.String(col.Key)), query) {
			return true
		}
	}
	return false
}

// View renders the table at its fixed page height, padding short pages
// with blank rows so the layout never jumps.
func (m *TableModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title))
	if m.loading {
		b.WriteString("  " + m.spinner.View() + DescStyle.Render("loading"))
	} else if !m.lastUpdated.IsZero() {
		b.WriteString("  " + DescStyle.Render("Updated: "+formatClock(m.lastUpdated)))
	}
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(SearchStyle.Render(m.search.View()) + "\n")
	}

	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg) + "\n")
	}

	b.WriteString(m.headerRow() + "\n")

	start, end := m.pager.GetSliceBounds(len(m.filtered))
	page := m.filtered[start:end]
	for _, row := range page {
		b.WriteString(m.renderRow(row) + "\n")
	}
	for i := len(page); i < m.pager.PerPage; i++ {
		b.WriteString(m.blankRow() + "\n")
	}

	b.WriteString(DescStyle.Render(fmt.Sprintf("Page %d/%d • %d items",
		m.pager.Page+1, m.pager.TotalPages, len(m.filtered))))

	return b.String()
}

func (m *TableModel) headerRow() string {
	cells := make([]string, len(m.columns))
	for i, col := range m.columns {
		cells[i] = TableHeaderStyle.
			Width(col.Width).
			Align(col.Align).
			Render(col.Title)
	}
	return strings.Join(cells, "  ")
}

func (m *TableModel) renderRow(row api.Row) string {
	cells := make([]string, len(m.columns))
	for i, col := range m.columns {
		text := row.String(col.Key)
		if col.Render != nil {
			text = col.Render(row)
		}

		style := lipgloss.NewStyle().Width(col.Width).Align(col.Align)
		if col.Signed {
			v, _ := row.Float(col.Key)
			style = style.Foreground(signStyle(v).GetForeground())
		}
		cells[i] = style.Render(truncate(text, col.Width))
	}
	return strings.Join(cells, "  ")
}

func (m *TableModel) blankRow() string {
	width := 0
	for _, col := range m.columns {
		width += col.Width + 2
	}
	return strings.Repeat(" ", width)
}

// truncate shortens s to the given display width without splitting runes.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// errorMessage maps fetch failures to the message shown in the table body.
// Server-provided error payloads are surfaced verbatim.
func errorMessage(err error, noun string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrUnexpectedResponse) {
		return "unexpected response from server"
	}
	return "failed to fetch " + strings.ToLower(noun)
}
