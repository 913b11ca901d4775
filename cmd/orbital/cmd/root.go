// Package cmd contains all CLI commands for orbital.
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f3rmion/orbital/internal/config"
	"github.com/f3rmion/orbital/internal/logging"
	"github.com/f3rmion/orbital/internal/progress"
)

var (
	cfgFile string
	verbose bool

	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orbital",
	Short: "Orbital Architect - build atoms electron by electron",
	Long: `Orbital Architect is a puzzle game about electron configurations.

Place electrons one at a time into the orbitals of an atom. Every move is
checked against three rules:
  - Aufbau: fill subshells in Madelung order (n+l, then n)
  - Pauli:  at most two electrons per orbital, with opposite spins
  - Hund:   one electron in every orbital of a subshell before pairing

Aufbau and Pauli mistakes are rejected. Hund mistakes are accepted but cost
points in campaign mode and are only flagged in sandbox mode.

Running 'orbital' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir := getConfigDir()

		// The TUI owns the terminal, so it logs to a file.
		logPath := ""
		if name := cmd.Name(); name == "orbital" || name == "play" {
			cfg, err := loadSettings(dir)
			if err != nil {
				return err
			}
			logPath = config.Resolve(dir, cfg.LogFile)
		}

		l, err := logging.New(logPath, viper.GetBool("verbose"))
		if err != nil {
			return err
		}
		logger = l
		logger.Debug("starting", zap.String("command", cmd.CommandPath()), zap.String("config_dir", dir))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runPlay,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/orbital)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose logging")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	addPlayFlags(rootCmd)
}

// initConfig reads in ENV variables and resolves the config directory.
func initConfig() {
	viper.SetEnvPrefix("ORBITAL")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
		return
	}
	if dir, err := config.GetConfigDir(); err == nil {
		viper.SetDefault("config_dir", dir)
	} else {
		viper.SetDefault("config_dir", filepath.Join(".", ".orbital"))
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadSettings loads settings.yaml and applies ORBITAL_* overrides.
func loadSettings(dir string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if mode := viper.GetString("mode"); mode != "" {
		cfg.Mode = mode
	}
	if z := viper.GetInt("start_element"); z > 0 {
		cfg.StartElement = z
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// openStore opens the progress database named by the settings.
func openStore(ctx context.Context, dir string, cfg *config.Config) (*progress.Store, error) {
	return progress.Open(ctx, config.Resolve(dir, cfg.DBPath), logger)
}
