package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/f3rmion/orbital/internal/campaign"
	"github.com/f3rmion/orbital/internal/config"
	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/orbital"
	"github.com/f3rmion/orbital/internal/progress"
	"github.com/f3rmion/orbital/internal/score"
	"github.com/f3rmion/orbital/internal/session"
	"github.com/f3rmion/orbital/internal/tui"
	"github.com/f3rmion/orbital/internal/tutor"
)

var playCmd = &cobra.Command{
	Use:     "play [element]",
	Aliases: []string{"p", "ui"},
	Short:   "Launch the interactive TUI",
	Long: `Launch the interactive board.

The element may be given as a symbol, a name or an atomic number. Without
one, campaign mode resumes at the first unplayed level and sandbox mode
starts at the configured start element.

Examples:
  orbital play
  orbital play Fe --sandbox
  orbital play 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	addPlayFlags(playCmd)
}

func addPlayFlags(c *cobra.Command) {
	c.Flags().Bool("sandbox", false, "play in sandbox mode (Hund is advisory, nothing is scored)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configDir := getConfigDir()
	if err := config.EnsureConfigDir(configDir); err != nil {
		return err
	}
	cfg, err := loadSettings(configDir)
	if err != nil {
		return err
	}
	if sandbox, _ := cmd.Flags().GetBool("sandbox"); sandbox {
		cfg.Mode = orbital.Sandbox.String()
	}
	mode := cfg.GameMode()

	// The game still runs without a progress store, it just forgets.
	store, err := openStore(ctx, configDir, cfg)
	if err != nil {
		logger.Warn("progress store unavailable", zap.Error(err))
		store = nil
	} else {
		defer store.Close()
	}

	z, err := startElement(ctx, store, cfg, mode, args)
	if err != nil {
		return err
	}

	rating := score.StartRating
	if store != nil {
		if r, err := store.Counter(ctx, progress.CounterRating); err == nil && r > 0 {
			rating = float64(r)
		}
	}
	sess, err := session.NewWithTracker(z, mode, score.New(rating))
	if err != nil {
		return err
	}

	client, err := tutor.NewClient(tutor.WithModel(cfg.TutorModel))
	if err != nil {
		logger.Info("tutor disabled", zap.Error(err))
		client = nil
	}

	logger.Info("session started",
		zap.String("session", sess.ID),
		zap.Int("z", z),
		zap.Stringer("mode", mode),
		zap.Float64("rating", rating),
	)

	p := tea.NewProgram(
		tui.NewApp(tui.Options{
			Session:   sess,
			Config:    cfg,
			ConfigDir: configDir,
			Store:     store,
			Tutor:     client,
			Logger:    logger,
		}),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// startElement picks the atom to open the board with.
func startElement(ctx context.Context, store *progress.Store, cfg *config.Config, mode orbital.Mode, args []string) (int, error) {
	if len(args) > 0 {
		el, err := elements.Parse(args[0])
		if err != nil {
			return 0, err
		}
		return el.Z, nil
	}
	if mode == orbital.Campaign && store != nil {
		stats, err := store.Stats(ctx)
		if err != nil {
			logger.Warn("reading progress failed", zap.Error(err))
			return cfg.StartElement, nil
		}
		return campaign.NextUnplayed(stats.Stars()).Element.Z, nil
	}
	return cfg.StartElement, nil
}
