package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset-progress",
	Short: "Delete all saved progress",
	Long:  `Delete every counter, level result and achievement. Requires --force.`,
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().Bool("force", false, "confirm deleting all progress")
}

func runReset(cmd *cobra.Command, args []string) error {
	if force, _ := cmd.Flags().GetBool("force"); !force {
		return fmt.Errorf("refusing to delete progress without --force")
	}

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

	if err := store.Reset(ctx); err != nil {
		return err
	}
	logger.Info("progress reset", zap.String("path", store.Path()))
	fmt.Fprintf(cmd.OutOrStdout(), "Progress deleted (%s)\n", store.Path())
	return nil
}
