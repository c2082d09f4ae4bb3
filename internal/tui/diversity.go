package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foliodash/folio/internal/api"
	"github.com/foliodash/folio/internal/diversity"
)

// DiversityModel shows the portfolio allocation breakdown as colored
// bars. The breakdown is recomputed on every poll but the view only
// changes when the slices structurally differ, so an unchanged portfolio
// does not repaint or lose the current selection.
type DiversityModel struct {
	client    *api.Client
	threshold float64
	refresh   time.Duration

	breakdown diversity.Breakdown
	colors    []string
	revision  int

	loaded   bool
	errMsg   string
	selected int // slice index under inspection, -1 for none
	pinned   bool

	gen   int
	width int
}

// NewDiversity creates the allocation breakdown widget.
func NewDiversity(client *api.Client, threshold float64, refresh time.Duration) *DiversityModel {
	return &DiversityModel{
		client:    client,
		threshold: threshold,
		refresh:   refresh,
		selected:  -1,
		width:     40,
	}
}

// SetSize sets the widget's available width.
func (m *DiversityModel) SetSize(width int) {
	m.width = width
}

// Revision increments each time the breakdown structurally changes.
func (m *DiversityModel) Revision() int {
	return m.revision
}

// ClearInteraction drops the selection and the pin, used when the widget
// leaves the screen.
func (m *DiversityModel) ClearInteraction() {
	m.selected = -1
	m.pinned = false
}

// Init starts the first fetch and the refresh timer.
func (m *DiversityModel) Init() tea.Cmd {
	m.gen++
	return tea.Batch(m.fetchCmd(m.gen), m.tickCmd())
}

// Refresh forces an immediate re-fetch.
func (m *DiversityModel) Refresh() tea.Cmd {
	m.gen++
	return m.fetchCmd(m.gen)
}

func (m *DiversityModel) fetchCmd(gen int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		holdings, err := client.Portfolio(ctx)
		if err != nil {
			return diversityErrMsg{gen: gen, err: err}
		}
		return diversityDataMsg{gen: gen, holdings: holdings}
	}
}

func (m *DiversityModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return diversityTickMsg{}
	})
}

// Update handles poll results and slice navigation.
func (m *DiversityModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case diversityTickMsg:
		m.gen++
		return tea.Batch(m.fetchCmd(m.gen), m.tickCmd())

	case diversityDataMsg:
		if msg.gen != m.gen {
			return nil
		}
		m.loaded = true
		m.errMsg = ""
		next := diversity.Aggregate(msg.holdings, m.threshold)
		if !next.Equal(m.breakdown) {
			m.breakdown = next
			m.colors = diversity.Colors(next.Slices)
			m.revision++
			if m.selected >= len(next.Slices) {
				m.selected = -1
				m.pinned = false
			}
		}
		return nil

	case diversityErrMsg:
		if msg.gen != m.gen {
			return nil
		}
		m.loaded = false
		m.errMsg = errorMessage(msg.err, "holdings")
		m.breakdown = diversity.Breakdown{}
		m.colors = nil
		m.ClearInteraction()
		return nil

	case tea.KeyMsg:
		m.handleKey(msg)
		return nil
	}
	return nil
}

func (m *DiversityModel) handleKey(msg tea.KeyMsg) {
	n := len(m.breakdown.Slices)
	if n == 0 {
		return
	}
	switch msg.String() {
	case "up", "k":
		if m.selected < 0 {
			m.selected = 0
		} else if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < 0 {
			m.selected = 0
		} else if m.selected < n-1 {
			m.selected++
		}
	case "enter":
		if m.selected >= 0 {
			m.pinned = !m.pinned
		}
	case "esc":
		m.ClearInteraction()
	}
}

// View renders the breakdown bars with the detail overlay when a slice is
// selected or pinned.
func (m *DiversityModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Diversity") + "\n")

	switch {
	case m.errMsg != "":
		b.WriteString(ErrorStyle.Render(m.errMsg))
		return b.String()
	case m.loaded && m.breakdown.Empty():
		b.WriteString(DescStyle.Render("No holdings yet"))
		return b.String()
	case m.breakdown.Empty():
		b.WriteString(DescStyle.Render("Loading..."))
		return b.String()
	}

	nameWidth := 0
	for _, s := range m.breakdown.Slices {
		if len(s.Name) > nameWidth {
			nameWidth = len(s.Name)
		}
	}
	if nameWidth > 14 {
		nameWidth = 14
	}
	barSpace := m.width - nameWidth - 12
	if barSpace < 8 {
		barSpace = 8
	}

	for i, s := range m.breakdown.Slices {
		marker := "  "
		if i == m.selected {
			marker = KeyStyle.Render("▶ ")
		}
		barLen := int(s.Pct / 100 * float64(barSpace))
		if barLen < 1 {
			barLen = 1
		}
		bar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.colors[i])).
			Render(strings.Repeat("█", barLen))
		name := lipgloss.NewStyle().Width(nameWidth).Render(truncate(s.Name, nameWidth))
		pct := fmt.Sprintf("%5.1f%%", s.Pct)
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", marker, name, bar, DescStyle.Render(pct)))
	}

	if m.selected >= 0 || m.pinned {
		b.WriteString(m.overlayView())
	}
	return strings.TrimRight(b.String(), "\n")
}

// overlayView is the detail box for the selected slice, the analog of a
// pie chart's center label.
func (m *DiversityModel) overlayView() string {
	if m.selected < 0 || m.selected >= len(m.breakdown.Slices) {
		return ""
	}
	s := m.breakdown.Slices[m.selected]
	pin := ""
	if m.pinned {
		pin = DescStyle.Render(" (pinned)")
	}
	body := fmt.Sprintf("%s%s\n%s  %s",
		TitleStyle.Render(s.Name), pin,
		ValueStyle.Render(FormatCurrency(s.Value)),
		DescStyle.Render(fmt.Sprintf("%.1f%% of portfolio", s.Pct)))
	return OverlayStyle.Render(body)
}
