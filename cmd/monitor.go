package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vnx-tools/vnxctl/internal/app"
	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/monitor"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor free HLUs of all storage groups",
	Long: `Periodically reloads every storage group, publishes the free HLU
gauges and reports groups at or below the low watermark. Runs in the
foreground until interrupted.

Combine with --metrics-textfile to feed the node exporter textfile collector.`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

var (
	monitorInterval     int
	monitorLowWatermark int
)

func init() {
	monitorCmd.Flags().IntVar(&monitorInterval, "interval", 60, "Check interval in seconds")
	monitorCmd.Flags().IntVar(&monitorLowWatermark, "low-watermark", monitor.DefaultLowWatermark, "Report storage groups with at most this many free HLUs")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	b, err := backend()
	if err != nil {
		return err
	}
	groupOpts, err := groupOptions()
	if err != nil {
		return err
	}

	mon := monitor.New(time.Duration(monitorInterval)*time.Second, b,
		monitor.WithAuditLogger(app.Default.Audit),
		monitor.WithLowWatermark(monitorLowWatermark),
		monitor.WithTextfile(app.Default.Config.State.MetricsTextfile),
		monitor.WithGroupOptions(groupOpts...),
	)

	logInfo("Starting storage group monitor (interval: %ds, low watermark: %d)", monitorInterval, monitorLowWatermark)

	err = mon.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		logInfo("Monitor stopped")
		return nil
	}
	return err
}
