package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/orbital/internal/campaign"
	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/orbital"
)

// Levels view styles
var (
	levelsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	levelsChapterStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc"))

	levelsRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	levelsSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436"))

	levelsLockedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	levelsStarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d"))

	levelsSearchStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#ffe66d")).
				Padding(0, 1)

	levelsErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B"))

	levelsHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)
)

// LevelsModel lists the campaign atoms and lets the player jump to any element.
type LevelsModel struct {
	stars map[int]int
	mode  orbital.Mode

	selected int
	scrollY  int

	input textinput.Model
	err   error

	width  int
	height int
}

// NewLevelsModel creates the level list.
func NewLevelsModel(mode orbital.Mode) LevelsModel {
	ti := textinput.New()
	ti.Placeholder = "symbol, name or Z (e.g. Fe, iron, 26)"
	ti.CharLimit = 20
	ti.Width = 36

	return LevelsModel{
		stars: map[int]int{},
		mode:  mode,
		input: ti,
	}
}

// SetSize updates the view dimensions.
func (m *LevelsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStars updates the best stars per atomic number.
func (m *LevelsModel) SetStars(stars map[int]int) {
	if stars == nil {
		stars = map[int]int{}
	}
	m.stars = stars
}

// SetMode changes which atoms may be started.
func (m *LevelsModel) SetMode(mode orbital.Mode) {
	m.mode = mode
}

// Editing reports whether the jump input has focus.
func (m LevelsModel) Editing() bool {
	return m.input.Focused()
}

func (m LevelsModel) playable(index int) bool {
	return m.mode == orbital.Sandbox || campaign.Unlocked(m.stars, index)
}

// Update handles messages.
func (m LevelsModel) Update(msg tea.Msg) (LevelsModel, tea.Cmd) {
	if m.input.Focused() {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				m.input.Blur()
				m.input.Reset()
				return m, nil
			case "enter":
				return m.jump(strings.TrimSpace(m.input.Value()))
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selected < campaign.LevelCount()-1 {
				m.selected++
			}
			m.ensureVisible()
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
			m.ensureVisible()
		case "g":
			m.selected = 0
			m.scrollY = 0
		case "G":
			m.selected = campaign.LevelCount() - 1
			m.ensureVisible()
		case "c":
			if lvl := campaign.NextUnplayed(m.stars); lvl != nil {
				m.selected = lvl.Index
				m.ensureVisible()
			}
		case "/":
			m.err = nil
			m.input.Focus()
			return m, textinput.Blink
		case "enter":
			if !m.playable(m.selected) {
				m.err = fmt.Errorf("%s is locked", campaign.GetLevel(m.selected).Element.Name)
				return m, nil
			}
			m.err = nil
			z := campaign.GetLevel(m.selected).Element.Z
			return m, func() tea.Msg { return StartLevelMsg{Z: z} }
		}
	}
	return m, nil
}

func (m LevelsModel) jump(query string) (LevelsModel, tea.Cmd) {
	if query == "" {
		return m, nil
	}
	el, err := elements.Parse(query)
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.mode == orbital.Campaign {
		lvl := campaign.ForZ(el.Z)
		if lvl == nil {
			m.err = fmt.Errorf("%s is not in the campaign; switch to sandbox to build it", el.Name)
			return m, nil
		}
		if !campaign.Unlocked(m.stars, lvl.Index) {
			m.err = fmt.Errorf("%s is locked", el.Name)
			return m, nil
		}
		m.selected = lvl.Index
		m.ensureVisible()
	}
	m.err = nil
	m.input.Blur()
	m.input.Reset()
	return m, func() tea.Msg { return StartLevelMsg{Z: el.Z} }
}

func (m LevelsModel) visibleRows() int {
	return max(m.height-12, 5)
}

func (m *LevelsModel) ensureVisible() {
	rows := m.visibleRows()
	if m.selected < m.scrollY {
		m.scrollY = m.selected
	}
	if m.selected >= m.scrollY+rows {
		m.scrollY = m.selected - rows + 1
	}
}

// View renders the level list.
func (m LevelsModel) View() string {
	var b strings.Builder

	done := 0
	for _, s := range m.stars {
		if s > 0 {
			done++
		}
	}
	b.WriteString(levelsTitleStyle.Render(fmt.Sprintf("Campaign  %d/%d atoms", done, campaign.LevelCount())))
	b.WriteString("\n")

	if m.input.Focused() {
		b.WriteString(levelsSearchStyle.Render(m.input.View()))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(levelsErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	end := minInt(m.scrollY+m.visibleRows(), campaign.LevelCount())
	chapter := ""
	for i := m.scrollY; i < end; i++ {
		lvl := campaign.GetLevel(i)
		if lvl.Chapter != chapter {
			chapter = lvl.Chapter
			b.WriteString(levelsChapterStyle.Render(chapter))
			b.WriteString("\n")
		}

		stars := strings.Repeat("★", m.stars[lvl.Element.Z]) + strings.Repeat("☆", 3-m.stars[lvl.Element.Z])
		row := fmt.Sprintf("  %-16s %-3s", lvl.Name(), lvl.Element.Symbol)

		var line string
		switch {
		case i == m.selected:
			line = levelsSelectedStyle.Render(row) + " " + levelsStarStyle.Render(stars)
		case !m.playable(i):
			line = levelsLockedStyle.Render(row + " locked")
		default:
			line = levelsRowStyle.Render(row) + " " + levelsStarStyle.Render(stars)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	help := "j/k: move • enter: play • c: next unplayed • /: jump to element"
	if m.input.Focused() {
		help = "enter: play • esc: cancel"
	}
	b.WriteString(levelsHelpStyle.Render(help))

	return b.String()
}
