package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/f3rmion/orbital/internal/campaign"
	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show saved progress",
	Long:  `Show lifetime counters, the best result per atom and unlocked achievements.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dir := getConfigDir()
	cfg, err := loadSettings(dir)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, dir, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if statsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(out, "Progress (%s)\n\n", store.Path())
	counters := []struct {
		label string
		key   string
	}{
		{"Atoms completed", progress.CounterAtoms},
		{"Electrons placed", progress.CounterPlacements},
		{"Mistakes", progress.CounterMistakes},
		{"Hints", progress.CounterHints},
		{"Points", progress.CounterPoints},
		{"Best streak", progress.CounterBestStreak},
		{"Rating", progress.CounterRating},
	}
	for _, c := range counters {
		fmt.Fprintf(out, "  %-18s %d\n", c.label, stats.Counters[c.key])
	}

	if len(stats.Levels) > 0 {
		fmt.Fprintf(out, "\nAtoms\n")
		var zs []int
		for z := range stats.Levels {
			zs = append(zs, z)
		}
		sort.Ints(zs)
		for _, z := range zs {
			l := stats.Levels[z]
			el, err := elements.Lookup(z)
			if err != nil {
				continue
			}
			fmt.Fprintf(out, "  %3d %-3s %-14s %-3s best %4d  played %d\n",
				z, el.Symbol, el.Name, stars(l.Stars), l.BestPoints, l.Completions)
		}
	}

	next := campaign.NextUnplayed(stats.Stars())
	fmt.Fprintf(out, "\nNext campaign atom: %s\n", next.Name())

	fmt.Fprintf(out, "\nAchievements %d/%d\n", len(stats.Achievements), len(progress.Achievements))
	for _, a := range progress.Achievements {
		mark := "☆"
		if _, ok := stats.Achievements[a.ID]; ok {
			mark = "★"
		}
		fmt.Fprintf(out, "  %s %-16s %s\n", mark, a.Name, a.Description)
	}
	return nil
}

func stars(n int) string {
	s := ""
	for i := 0; i < 3; i++ {
		if i < n {
			s += "★"
		} else {
			s += "☆"
		}
	}
	return s
}
