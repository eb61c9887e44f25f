package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vnx-tools/vnxctl/internal/app"
	"github.com/vnx-tools/vnxctl/internal/config"
	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/logging"
	"github.com/vnx-tools/vnxctl/internal/metrics"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

var (
	verbose         bool
	jsonOutput      bool
	configPath      string
	noPoll          bool
	metricsTextfile string
)

// newApp builds the application for a loaded config. Tests replace it to
// inject a fake array.
var newApp = func(cfg *config.Config) *app.App {
	return app.New(app.WithConfig(cfg))
}

var rootCmd = &cobra.Command{
	Use:   "vnxctl",
	Short: "EMC VNX storage group management CLI",
	Long: `vnxctl manages storage groups on EMC VNX arrays through naviseccli.

It attaches LUNs to storage groups with automatic HLU selection:
  - Free HLUs are tracked per storage group
  - Conflicts with other hosts are retried with a fresh view of the array
  - Every change is recorded in a per storage group audit log`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(logging.Options{Verbose: verbose, JSON: jsonOutput, Writer: cmd.ErrOrStderr()})
		logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

		cfg, err := config.Load(config.ResolvePath(configPath))
		if err != nil {
			return errors.ConfigError("failed to load configuration", err)
		}
		if noPoll {
			cfg.Array.NoPoll = true
		}
		if metricsTextfile != "" {
			cfg.State.MetricsTextfile = metricsTextfile
		}
		storagegroup.SetMaxLUNsPerGroup(cfg.StorageGroup.MaxLUNsPerGroup)

		app.SetDefault(newApp(cfg))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		path := app.Default.Config.State.MetricsTextfile
		if path == "" {
			return nil
		}
		if err := metrics.WriteTextfile(path); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		return nil
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $"+config.ConfigEnv+" or /etc/vnxctl/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&noPoll, "no-poll", false, "Pass -np to naviseccli")
	rootCmd.PersistentFlags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the command")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
