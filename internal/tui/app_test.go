package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/orbital/internal/config"
	"github.com/f3rmion/orbital/internal/orbital"
	"github.com/f3rmion/orbital/internal/progress"
	"github.com/f3rmion/orbital/internal/session"
	"github.com/f3rmion/orbital/internal/tui/views"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newApp(t *testing.T) AppModel {
	t.Helper()
	s, err := session.New(6, orbital.Campaign)
	require.NoError(t, err)
	app := NewApp(Options{Session: s, Config: config.Default()})
	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(AppModel)
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func TestAppSwitchesViews(t *testing.T) {
	m := newApp(t)
	assert.Equal(t, ViewBuild, m.currentView)
	assert.Contains(t, m.View(), "Carbon")

	m = update(t, m, runes("2"))
	assert.Equal(t, ViewLevels, m.currentView)
	assert.Contains(t, m.View(), "Campaign")

	m = update(t, m, runes("4"))
	assert.Equal(t, ViewSettings, m.currentView)
	assert.Equal(t, 3, m.selectedMenu)
}

func TestAppStartLevel(t *testing.T) {
	m := newApp(t)
	m = update(t, m, runes("2"))
	m = update(t, m, views.StartLevelMsg{Z: 8})
	assert.Equal(t, ViewBuild, m.currentView)
	assert.Equal(t, "O", m.Session().Element.Symbol)

	m = update(t, m, views.StartLevelMsg{Z: 0})
	assert.Equal(t, "O", m.Session().Element.Symbol)
}

func TestAppInputOwnsDigits(t *testing.T) {
	m := newApp(t)
	m = update(t, m, runes("2"))
	m = update(t, m, runes("/"))
	m = update(t, m, runes("1"))
	assert.Equal(t, ViewLevels, m.currentView)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, runes("1"))
	assert.Equal(t, ViewBuild, m.currentView)
}

func TestAppModeChangeReachesBoard(t *testing.T) {
	m := newApp(t)
	m = update(t, m, views.ModeChangedMsg{Mode: orbital.Sandbox})
	assert.Equal(t, orbital.Sandbox, m.Session().Mode)
	assert.Contains(t, m.View(), "unscored")
}

func TestAppStatsUnlockLevels(t *testing.T) {
	m := newApp(t)
	m = update(t, m, views.StatsLoadedMsg{Stats: progress.Stats{
		Levels: map[int]progress.LevelResult{1: {Z: 1, Stars: 3, Completions: 1}},
	}})
	m = update(t, m, runes("2"))
	m = update(t, m, runes("j"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, views.StartLevelMsg{Z: 2}, cmd())
}

func TestAppHelpOverlay(t *testing.T) {
	m := newApp(t)
	m = update(t, m, runes("?"))
	assert.Contains(t, m.View(), "Press any key to close")
	m = update(t, m, runes("x"))
	assert.False(t, m.showHelp)
}
