package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/f3rmion/orbital/internal/config"
	"github.com/f3rmion/orbital/internal/progress"
	"github.com/f3rmion/orbital/internal/session"
	"github.com/f3rmion/orbital/internal/tui/views"
	"github.com/f3rmion/orbital/internal/tutor"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewBuild ViewType = iota
	ViewLevels
	ViewStats
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// Options wires the app to its collaborators. Store and Tutor may be nil.
type Options struct {
	Session   *session.Session
	Config    *config.Config
	ConfigDir string
	Store     *progress.Store
	Tutor     *tutor.Client
	Logger    *zap.Logger
}

// AppModel is the main TUI model
type AppModel struct {
	store  *progress.Store
	logger *zap.Logger

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	buildView    views.BuildModel
	levelsView   views.LevelsModel
	statsView    views.StatsModel
	settingsView views.SettingsModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI application
func NewApp(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	menuItems := []MenuItem{
		{Label: "Build", View: ViewBuild, Shortcut: "1"},
		{Label: "Levels", View: ViewLevels, Shortcut: "2"},
		{Label: "Stats", View: ViewStats, Shortcut: "3"},
		{Label: "Settings", View: ViewSettings, Shortcut: "4"},
	}

	return AppModel{
		store:        opts.Store,
		logger:       logger,
		sidebarWidth: 18,
		currentView:  ViewBuild,
		menuItems:    menuItems,

		buildView:    views.NewBuildModel(opts.Session, cfg, opts.Store, opts.Tutor, logger),
		levelsView:   views.NewLevelsModel(opts.Session.Mode),
		statsView:    views.NewStatsModel(opts.Store),
		settingsView: views.NewSettingsModel(cfg, opts.ConfigDir),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return views.LoadStats(m.store)
}

// Session returns the session being played.
func (m AppModel) Session() *session.Session {
	return m.buildView.Session()
}

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Text input owns the keyboard while it has focus
		editing := !m.sidebarActive && m.currentView == ViewLevels && m.levelsView.Editing()
		if !editing {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "esc":
				if m.sidebarActive {
					return m, tea.Quit
				}
				m.sidebarActive = true
				return m, nil
			case "1":
				m.switchTo(ViewBuild)
				return m, nil
			case "2":
				m.switchTo(ViewLevels)
				return m, nil
			case "3":
				m.switchTo(ViewStats)
				return m, views.LoadStats(m.store)
			case "4":
				m.switchTo(ViewSettings)
				return m, nil
			case "tab":
				m.sidebarActive = !m.sidebarActive
				return m, nil
			}
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.buildView.SetSize(contentWidth, contentHeight)
		m.levelsView.SetSize(contentWidth, contentHeight)
		m.statsView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)

		return m, nil

	case ViewSwitchMsg:
		m.switchTo(msg.View)
		return m, nil

	case views.StartLevelMsg:
		if err := m.buildView.SetElement(msg.Z); err != nil {
			m.logger.Warn("cannot start atom", zap.Int("z", msg.Z), zap.Error(err))
			return m, nil
		}
		m.switchTo(ViewBuild)
		return m, nil

	case views.ModeChangedMsg:
		m.buildView.SetMode(msg.Mode)
		m.levelsView.SetMode(msg.Mode)
		m.logger.Info("mode changed", zap.Stringer("mode", msg.Mode))
		return m, nil

	case views.StatsLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("loading stats failed", zap.Error(msg.Err))
		}
		m.statsView.SetStats(msg.Stats, msg.Err)
		if msg.Err == nil {
			m.levelsView.SetStars(msg.Stats.Stars())
		}
		return m, nil

	case views.CompletionSavedMsg:
		var cmd tea.Cmd
		m.buildView, cmd = m.buildView.Update(msg)
		return m, tea.Batch(cmd, views.LoadStats(m.store))

	case views.ConfigSavedMsg:
		if msg.Err != nil {
			m.logger.Warn("saving settings failed", zap.Error(msg.Err))
		}
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		return m, cmd
	}

	// Delegate to active view if not in sidebar mode
	if !m.sidebarActive {
		var cmd tea.Cmd
		switch m.currentView {
		case ViewBuild:
			m.buildView, cmd = m.buildView.Update(msg)
		case ViewLevels:
			m.levelsView, cmd = m.levelsView.Update(msg)
		case ViewStats:
			m.statsView, cmd = m.statsView.Update(msg)
		case ViewSettings:
			m.settingsView, cmd = m.settingsView.Update(msg)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if _, isKey := msg.(tea.KeyMsg); !isKey {
		// Async results still reach the board while the sidebar has focus.
		var cmd tea.Cmd
		m.buildView, cmd = m.buildView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewBuild:
		content = m.buildView.View()
	case ViewLevels:
		content = m.levelsView.View()
	case ViewStats:
		content = m.statsView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" ↑↓ ORBITAL "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Indicate current view but not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	s := m.buildView.Session()
	items = append(items, "")
	items = append(items, SidebarStatusStyle.Render(s.Element.Symbol+" • "+s.Mode.String()))

	// Spacer
	usedHeight := len(items) + 4
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	line := func(key, desc string) string {
		return HelpKeyStyle.Render(key) + HelpDescStyle.Render(desc) + "\n"
	}

	helpText := HelpTitleStyle.Render("Orbital - build atoms electron by electron") + "\n\n"

	helpText += HelpSectionStyle.Render("Global Keys") + "\n"
	helpText += line("1-4", "Switch views")
	helpText += line("tab", "Toggle sidebar focus")
	helpText += line("?", "Show this help")
	helpText += line("q", "Quit")

	helpText += HelpSectionStyle.Render("Build View") + "\n"
	helpText += line("←/→", "Move between orbitals")
	helpText += line("↑/↓", "Move between subshells")
	helpText += line("u / d", "Place spin up / down")
	helpText += line("h", "Show the next correct move")
	helpText += line("r", "Reveal it (costs points)")
	helpText += line("z", "Undo")
	helpText += line("R", "Clear the board")
	helpText += line("y", "Copy configuration")
	helpText += line("e", "Ask the tutor")
	helpText += line("n", "Next atom when complete")

	helpText += HelpSectionStyle.Render("Levels View") + "\n"
	helpText += line("enter", "Play selected atom")
	helpText += line("c", "Jump to next unplayed")
	helpText += line("/", "Jump to any element")

	helpText += HelpSectionStyle.Render("Rules") + "\n"
	helpText += HelpDescStyle.Render("Aufbau and Pauli mistakes are rejected. Hund mistakes are\naccepted: penalized in campaign, only flagged in sandbox.") + "\n"

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(helpText))
}
