package views

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/f3rmion/orbital/internal/config"
	"github.com/f3rmion/orbital/internal/orbital"
	"github.com/f3rmion/orbital/internal/progress"
	"github.com/f3rmion/orbital/internal/session"
	"github.com/f3rmion/orbital/internal/tutor"
)

func TestMain(m *testing.M) {
	// Keep-alive connections to test servers wind down on their own.
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newBoard(t *testing.T, z int, mode orbital.Mode) BuildModel {
	t.Helper()
	s, err := session.New(z, mode)
	require.NoError(t, err)
	m := NewBuildModel(s, config.Default(), nil, nil, nil)
	m.SetSize(100, 40)
	return m
}

func press(m BuildModel, keys ...string) (BuildModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(key(k))
	}
	return m, cmd
}

func TestBuildPlaceWithCursor(t *testing.T) {
	m := newBoard(t, 6, orbital.Campaign)

	m, _ = press(m, "u", "d")
	assert.Equal(t, 2, m.session.State.Placed())

	// 2p before 2s is rejected.
	m, _ = press(m, "right", "right", "u")
	assert.Equal(t, 2, m.session.State.Placed())
	require.NotNil(t, m.last)
	assert.Equal(t, orbital.Aufbau, m.last.Verdict.Violation.Kind)
	assert.Contains(t, m.View(), "Aufbau")

	m, _ = press(m, "left", "u")
	assert.Equal(t, 3, m.session.State.Placed())
}

func TestBuildSubshellJump(t *testing.T) {
	m := newBoard(t, 10, orbital.Sandbox)

	m, _ = press(m, "up")
	assert.Equal(t, 1, m.cursor) // 2s
	m, _ = press(m, "up")
	assert.Equal(t, 2, m.cursor) // 2p(-1)
	m, _ = press(m, "up")
	assert.Equal(t, 2, m.cursor)
	m, _ = press(m, "right", "right", "down")
	assert.Equal(t, 1, m.cursor)
	m, _ = press(m, "down", "down")
	assert.Equal(t, 0, m.cursor)
}

func TestBuildHintMovesCursor(t *testing.T) {
	m := newBoard(t, 6, orbital.Sandbox)
	m, _ = press(m, "r", "r", "r", "r", "r")
	assert.Equal(t, "1s² 2s² 2p¹", m.session.State.Configuration())

	m, _ = press(m, "h")
	require.NotNil(t, m.hint)
	assert.Equal(t, orbital.ID{N: 2, L: 1, ML: 0}, m.hint.Orbital)
	assert.Equal(t, 3, m.cursor)
	assert.Equal(t, 5, m.session.State.Placed())
}

func TestBuildUndoAndReset(t *testing.T) {
	m := newBoard(t, 3, orbital.Campaign)
	m, _ = press(m, "z")
	assert.ErrorIs(t, m.err, session.ErrNothingToUndo)

	m, _ = press(m, "r", "r", "z")
	assert.Equal(t, 1, m.session.State.Placed())

	m, _ = press(m, "R")
	assert.Equal(t, 0, m.session.State.Placed())
	assert.Contains(t, m.View(), "Board cleared")
}

func TestBuildCompletionAndNext(t *testing.T) {
	m := newBoard(t, 2, orbital.Campaign)
	m, cmd := press(m, "n")
	assert.Nil(t, cmd)

	m, cmd = press(m, "u", "d")
	assert.Nil(t, cmd) // no store
	assert.True(t, m.session.State.Complete())
	assert.Contains(t, m.View(), "★★★")

	_, cmd = press(m, "n")
	require.NotNil(t, cmd)
	assert.Equal(t, StartLevelMsg{Z: 3}, cmd())
}

func TestBuildRecordsCompletionOnce(t *testing.T) {
	ctx := context.Background()
	st, err := progress.Open(ctx, filepath.Join(t.TempDir(), "progress.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s, err := session.New(2, orbital.Campaign)
	require.NoError(t, err)
	m := NewBuildModel(s, config.Default(), st, nil, nil)
	m.SetSize(100, 40)

	m, cmd := press(m, "u", "d")
	require.NotNil(t, cmd)
	saved, ok := cmd().(CompletionSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	m, _ = m.Update(saved)

	for i := 0; i < 4; i++ {
		m, cmd = press(m, "z", "d")
		assert.True(t, m.session.State.Complete())
		assert.Nil(t, cmd, "completion %d recorded again", i+2)
	}

	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Levels[2].Completions)
	assert.Equal(t, int64(1), stats.Counters[progress.CounterAtoms])
	assert.Equal(t, int64(2), stats.Counters[progress.CounterPlacements])
	assert.Equal(t, int64(22), stats.Counters[progress.CounterPoints])
}

func TestBuildNextStopsAtCampaignEnd(t *testing.T) {
	m := newBoard(t, 36, orbital.Campaign)
	for !m.session.State.Complete() {
		m, _ = press(m, "r")
	}
	_, cmd := press(m, "n")
	assert.Nil(t, cmd)

	m.SetMode(orbital.Sandbox)
	_, cmd = press(m, "n")
	require.NotNil(t, cmd)
	assert.Equal(t, StartLevelMsg{Z: 37}, cmd())
}

func TestBuildTutorUnavailable(t *testing.T) {
	m := newBoard(t, 1, orbital.Sandbox)
	m, cmd := press(m, "e")
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "tutor unavailable")
}

func TestBuildIgnoresStaleExplanation(t *testing.T) {
	m := newBoard(t, 1, orbital.Sandbox)
	m.explaining = true
	require.NoError(t, m.SetElement(2))

	m, _ = m.Update(explainResultMsg{z: 1, text: "hydrogen"})
	assert.Empty(t, m.explanation)
	assert.False(t, m.explaining)
}

func TestBuildCoreNotationToggle(t *testing.T) {
	m := newBoard(t, 11, orbital.Sandbox)
	for !m.session.State.Complete() {
		m, _ = press(m, "r")
	}
	assert.Equal(t, "[Ne] 3s¹", m.configuration())

	m.config.ShowCoreNotation = false
	assert.Equal(t, "1s² 2s² 2p⁶ 3s¹", m.configuration())
}

func TestDescribeOutcome(t *testing.T) {
	out := session.Outcome{
		Placement: orbital.Placement{Orbital: orbital.ID{N: 1}, Spin: orbital.Up},
		Verdict:   orbital.Verdict{Accepted: true},
	}
	out.Delta.Points = 12
	assert.Equal(t, "✓ 1s↑ (+12)", describeOutcome(out, orbital.Campaign))
	assert.Equal(t, "✓ 1s↑", describeOutcome(out, orbital.Sandbox))
}

func TestLevelsLockedUntilPreviousStarred(t *testing.T) {
	m := NewLevelsModel(orbital.Campaign)
	m.SetSize(80, 40)

	m, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, StartLevelMsg{Z: 1}, cmd())

	m, cmd = m.Update(key("j"))
	assert.Nil(t, cmd)
	m, cmd = m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Helium is locked")

	m.SetStars(map[int]int{1: 2})
	_, cmd = m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, StartLevelMsg{Z: 2}, cmd())
}

func TestLevelsJumpInput(t *testing.T) {
	m := NewLevelsModel(orbital.Campaign)
	m.SetSize(80, 40)

	m, _ = m.Update(key("/"))
	require.True(t, m.Editing())
	for _, r := range "iron" {
		m, _ = m.Update(key(string(r)))
	}
	m, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Iron is locked")
	assert.True(t, m.Editing())

	m, _ = m.Update(key("esc"))
	assert.False(t, m.Editing())

	m.SetMode(orbital.Sandbox)
	m, _ = m.Update(key("/"))
	for _, r := range "Og" {
		m, _ = m.Update(key(string(r)))
	}
	m, cmd = m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, StartLevelMsg{Z: 118}, cmd())
	assert.False(t, m.Editing())
}

func TestLevelsNextUnplayed(t *testing.T) {
	m := NewLevelsModel(orbital.Campaign)
	m.SetSize(80, 40)
	m.SetStars(map[int]int{1: 3, 2: 1, 3: 2})

	m, _ = m.Update(key("c"))
	assert.Equal(t, 3, m.selected)
	assert.Contains(t, m.View(), "3/36 atoms")
}

func TestSettingsToggleMode(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	m := NewSettingsModel(cfg, dir)

	m, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, "sandbox", cfg.Mode)

	var gotMode bool
	for _, msg := range cmd().(tea.BatchMsg) {
		switch msg := msg().(type) {
		case ModeChangedMsg:
			assert.Equal(t, orbital.Sandbox, msg.Mode)
			gotMode = true
		case ConfigSavedMsg:
			require.NoError(t, msg.Err)
			m, _ = m.Update(msg)
		}
	}
	assert.True(t, gotMode)
	assert.Contains(t, m.View(), "Saved")

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "sandbox", loaded.Mode)
}

func TestSettingsStartElementWraps(t *testing.T) {
	cfg := config.Default()
	cfg.StartElement = 1
	m := NewSettingsModel(cfg, "")

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("left"))
	assert.Equal(t, 118, cfg.StartElement)
	_, _ = m.Update(key("right"))
	assert.Equal(t, 1, cfg.StartElement)
}

func TestBuildExplainUsesTutor(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		prompt = string(body)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Chromium borrows a 4s electron."}]}`))
	}))
	defer srv.Close()

	s, err := session.New(24, orbital.Sandbox)
	require.NoError(t, err)
	m := NewBuildModel(s, config.Default(), nil, tutor.NewClientWithKey("k", tutor.WithURL(srv.URL)), nil)
	m.SetSize(100, 40)

	m, cmd := press(m, "e")
	require.NotNil(t, cmd)
	assert.True(t, m.explaining)
	assert.Contains(t, m.View(), "Asking the tutor")

	m, _ = m.Update(cmd())
	assert.False(t, m.explaining)
	assert.Contains(t, m.explanation, "borrows")
	assert.Contains(t, prompt, "Chromium")
	assert.Contains(t, prompt, "[Ar] 4s¹ 3d⁵")
}
