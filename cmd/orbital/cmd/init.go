package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/orbital/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize orbital configuration",
	Long: `Write a default settings.yaml to your config directory.

Settings:
  mode                campaign or sandbox
  start_element       atomic number the sandbox opens with
  db_path             progress database, relative to the config directory
  show_core_notation  show [Ne] 3s¹ instead of the full configuration
  tutor_model         model used by the tutor (needs ANTHROPIC_API_KEY)
  log_file            TUI log file, relative to the config directory`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.SettingsFile)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("settings already exist: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureConfigDir(configDir); err != nil {
		return err
	}
	if err := config.Save(configDir, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Run 'orbital rules' to read the rules")
	fmt.Fprintln(out, "  2. Run 'orbital' to start the campaign")
	fmt.Fprintln(out, "  3. Run 'orbital play Fe --sandbox' to experiment freely")
	return nil
}
