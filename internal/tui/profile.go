package tui

import (
	"strings"

	"github.com/foliodash/folio/internal/config"
)

// ProfileModel is the owner card on the overview. It has a front with
// name and bio and a back with contact links, toggled with one key the
// way a tap flips the card in a native UI.
type ProfileModel struct {
	profile config.Profile
	flipped bool
	width   int
}

// NewProfile creates the profile card from the configured profile.
func NewProfile(profile config.Profile) *ProfileModel {
	return &ProfileModel{profile: profile, width: 30}
}

// SetSize sets the card's width.
func (m *ProfileModel) SetSize(width int) {
	m.width = width
}

// Flip toggles between the front and the back of the card.
func (m *ProfileModel) Flip() {
	m.flipped = !m.flipped
}

// View renders the current face of the card.
func (m *ProfileModel) View() string {
	inner := m.width - 4
	if inner < 16 {
		inner = 16
	}

	var b strings.Builder
	if !m.flipped {
		b.WriteString(TitleStyle.Render(m.profile.Name) + "\n")
		b.WriteString(DescStyle.Render(m.profile.Title) + "\n\n")
		b.WriteString(wrap(m.profile.Bio, inner) + "\n\n")
		b.WriteString(DescStyle.Render("p: flip for contact"))
	} else {
		b.WriteString(TitleStyle.Render("Contact") + "\n\n")
		if m.profile.Email != "" {
			b.WriteString(LabelStyle.Render("Email    ") + m.profile.Email + "\n")
		}
		if m.profile.GitHub != "" {
			b.WriteString(LabelStyle.Render("GitHub   ") + m.profile.GitHub + "\n")
		}
		if m.profile.LinkedIn != "" {
			b.WriteString(LabelStyle.Render("LinkedIn ") + m.profile.LinkedIn + "\n")
		}
		b.WriteString("\n" + DescStyle.Render("p: flip back"))
	}
	return CardStyle.Width(m.width).Render(b.String())
}

// wrap breaks text into lines no wider than width, on word boundaries.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
