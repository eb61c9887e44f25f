package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vnx-tools/vnxctl/internal/app"
	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the storage processors answer naviseccli",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

var healthOutput string

func init() {
	healthCmd.Flags().StringVarP(&healthOutput, "output", "o", "table", "Output format: table, json or yaml")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(healthOutput)
	if err != nil {
		return err
	}

	client, err := app.Default.Client()
	if err != nil {
		return err
	}

	result := health.Check(cmd.Context(), client)
	status := result.Status()

	if format != formatTable {
		if err := encode(cmd.OutOrStdout(), format, result); err != nil {
			return err
		}
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SP\tADDRESS\tSTATUS\tLATENCY\tMODEL\tREVISION")
		for _, r := range result.SPs {
			state, model, rev := "ok", "-", "-"
			if !r.Reachable {
				state = "unreachable"
			}
			if r.Agent != nil {
				model, rev = r.Agent.Model, r.Agent.Revision
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.SP, r.Address, state, r.Latency.Round(time.Millisecond), model, rev)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	switch status {
	case health.StatusHealthy:
		return nil
	case health.StatusDegraded:
		logWarning("Array is degraded: only one storage processor answered")
		return nil
	}
	return errors.SPUnreachable("A and B", fmt.Errorf("no storage processor answered"))
}
