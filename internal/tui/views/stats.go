package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	store "github.com/f3rmion/orbital/internal/progress"
)

// Stats view styles
var (
	statsTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	statsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc")).
				MarginTop(1)

	statsLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Width(18)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	statsEarnedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8e6cf")).
				Bold(true)

	statsMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	statsHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)
)

// StatsModel shows lifetime progress.
type StatsModel struct {
	store  *store.Store
	stats  store.Stats
	loaded bool
	err    error

	width  int
	height int
}

// NewStatsModel creates the stats view. st may be nil.
func NewStatsModel(st *store.Store) StatsModel {
	return StatsModel{store: st}
}

// SetSize updates the view dimensions.
func (m *StatsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStats replaces the displayed numbers.
func (m *StatsModel) SetStats(stats store.Stats, err error) {
	m.err = err
	if err == nil {
		m.stats = stats
		m.loaded = true
	}
}

// Update handles messages.
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "r" {
		return m, LoadStats(m.store)
	}
	return m, nil
}

// View renders the stats view.
func (m StatsModel) View() string {
	var b strings.Builder

	b.WriteString(statsTitleStyle.Render("Progress"))
	b.WriteString("\n")

	if m.store == nil {
		b.WriteString(statsMutedStyle.Render("Progress store unavailable; results are not being saved"))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(statsMutedStyle.Render("Could not read progress: " + m.err.Error()))
		b.WriteString("\n")
	}
	if !m.loaded {
		b.WriteString(statsMutedStyle.Render("Loading..."))
		return b.String()
	}

	c := m.stats.Counters
	rows := []struct {
		label string
		value string
	}{
		{"Atoms completed", fmt.Sprint(c[store.CounterAtoms])},
		{"Electrons placed", fmt.Sprint(c[store.CounterPlacements])},
		{"Mistakes", fmt.Sprint(c[store.CounterMistakes])},
		{"Hints", fmt.Sprint(c[store.CounterHints])},
		{"Points", fmt.Sprint(c[store.CounterPoints])},
		{"Best streak", fmt.Sprint(c[store.CounterBestStreak])},
		{"Rating", ratingLabel(c[store.CounterRating])},
	}
	for _, r := range rows {
		b.WriteString(statsLabelStyle.Render(r.label))
		b.WriteString(statsValueStyle.Render(r.value))
		b.WriteString("\n")
	}

	stars, three := 0, 0
	for _, l := range m.stats.Levels {
		stars += l.Stars
		if l.Stars == 3 {
			three++
		}
	}
	b.WriteString(statsLabelStyle.Render("Stars"))
	b.WriteString(statsValueStyle.Render(fmt.Sprintf("%d (%d atoms flawless)", stars, three)))
	b.WriteString("\n")

	b.WriteString(statsHeaderStyle.Render(fmt.Sprintf("Achievements %d/%d", len(m.stats.Achievements), len(store.Achievements))))
	b.WriteString("\n")
	for _, a := range store.Achievements {
		if at, ok := m.stats.Achievements[a.ID]; ok {
			b.WriteString(statsEarnedStyle.Render("★ " + a.Name))
			b.WriteString(statsMutedStyle.Render("  " + at.Format("2006-01-02")))
		} else {
			b.WriteString(statsMutedStyle.Render("☆ " + a.Name + " - " + a.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString(statsHelpStyle.Render("r: refresh"))
	return b.String()
}

func ratingLabel(r int64) string {
	if r == 0 {
		return "unrated"
	}
	return fmt.Sprint(r)
}
