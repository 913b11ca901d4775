package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/orbital/internal/config"
	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/orbital"
)

// Settings view styles
var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8dadc")).
				Width(20)

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee"))

	settingsSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436"))

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	settingsErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B"))

	settingsHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				MarginTop(1)
)

const (
	settingMode = iota
	settingStartElement
	settingCoreNotation
	settingCount
)

// SettingsModel is the settings view model.
type SettingsModel struct {
	config    *config.Config
	configDir string

	selected int
	saved    bool
	err      error

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(cfg *config.Config, configDir string) SettingsModel {
	if cfg == nil {
		cfg = config.Default()
	}
	return SettingsModel{
		config:    cfg,
		configDir: configDir,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			m.selected = (m.selected + 1) % settingCount
			return m, nil
		case "k", "up":
			m.selected = (m.selected + settingCount - 1) % settingCount
			return m, nil
		case "enter", " ", "right", "l":
			return m.change(1)
		case "left", "h":
			return m.change(-1)
		}

	case ConfigSavedMsg:
		m.err = msg.Err
		m.saved = msg.Err == nil
		return m, nil
	}
	return m, nil
}

func (m SettingsModel) change(dir int) (SettingsModel, tea.Cmd) {
	m.saved = false
	var cmds []tea.Cmd

	switch m.selected {
	case settingMode:
		mode := orbital.Campaign
		if m.config.GameMode() == orbital.Campaign {
			mode = orbital.Sandbox
		}
		m.config.Mode = mode.String()
		cmds = append(cmds, func() tea.Msg { return ModeChangedMsg{Mode: mode} })
	case settingStartElement:
		z := m.config.StartElement + dir
		if z < 1 {
			z = elements.Count()
		}
		if z > elements.Count() {
			z = 1
		}
		m.config.StartElement = z
	case settingCoreNotation:
		m.config.ShowCoreNotation = !m.config.ShowCoreNotation
	}

	cmds = append(cmds, saveConfig(m.configDir, *m.config))
	return m, tea.Batch(cmds...)
}

func saveConfig(dir string, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		if dir == "" {
			return ConfigSavedMsg{}
		}
		if err := config.EnsureConfigDir(dir); err != nil {
			return ConfigSavedMsg{Err: err}
		}
		return ConfigSavedMsg{Err: config.Save(dir, &cfg)}
	}
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(settingsTitleStyle.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(settingsPathStyle.Render("Config: " + m.configDir))
	b.WriteString("\n\n")

	start := "?"
	if el, err := elements.Lookup(m.config.StartElement); err == nil {
		start = fmt.Sprintf("%s (%s, Z=%d)", el.Name, el.Symbol, el.Z)
	}
	core := "off"
	if m.config.ShowCoreNotation {
		core = "on"
	}
	editable := []struct {
		label string
		value string
	}{
		{"Mode", m.config.GameMode().String()},
		{"Start element", start},
		{"Noble-gas core", core},
	}
	for i, row := range editable {
		b.WriteString(settingsLabelStyle.Render(row.label))
		if i == m.selected {
			b.WriteString(settingsSelectedStyle.Render("‹ " + row.value + " ›"))
		} else {
			b.WriteString(settingsRowStyle.Render("  " + row.value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(settingsLabelStyle.Render("Progress database"))
	b.WriteString(settingsMutedStyle.Render(config.Resolve(m.configDir, m.config.DBPath)))
	b.WriteString("\n")
	b.WriteString(settingsLabelStyle.Render("Log file"))
	b.WriteString(settingsMutedStyle.Render(config.Resolve(m.configDir, m.config.LogFile)))
	b.WriteString("\n")
	b.WriteString(settingsLabelStyle.Render("Tutor model"))
	b.WriteString(settingsMutedStyle.Render(m.config.TutorModel))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString("\n" + settingsErrorStyle.Render(m.err.Error()))
	case m.saved:
		b.WriteString("\n" + settingsMutedStyle.Render("Saved"))
	}

	b.WriteString("\n")
	b.WriteString(settingsHelpStyle.Render("j/k: select • enter/←→: change"))

	return b.String()
}
