package views

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/orbital/internal/orbital"
	"github.com/f3rmion/orbital/internal/progress"
)

const storeTimeout = 5 * time.Second

// StartLevelMsg asks the app to load atom Z onto the board.
type StartLevelMsg struct {
	Z int
}

// ModeChangedMsg is sent when the player switches between sandbox and campaign.
type ModeChangedMsg struct {
	Mode orbital.Mode
}

// CompletionSavedMsg reports the result of recording a finished atom.
type CompletionSavedMsg struct {
	Z        int
	Unlocked []progress.Achievement
	Err      error
}

// StatsLoadedMsg carries a fresh read of the progress store.
type StatsLoadedMsg struct {
	Stats progress.Stats
	Err   error
}

// ConfigSavedMsg reports the result of writing settings.yaml.
type ConfigSavedMsg struct {
	Err error
}

// LoadStats reads the progress store in the background.
func LoadStats(store *progress.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		stats, err := store.Stats(ctx)
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
