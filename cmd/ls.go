package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all storage groups",
	Args:  cobra.NoArgs,
	RunE:  runLs,
}

var lsOutput string

func init() {
	lsCmd.Flags().StringVarP(&lsOutput, "output", "o", "table", "Output format: table, json or yaml")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(lsOutput)
	if err != nil {
		return err
	}

	groups, err := listGroups(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list storage groups: %w", err)
	}

	if format != formatTable {
		states := make([]*storagegroup.State, len(groups))
		for i, g := range groups {
			states[i] = g.State()
		}
		return encode(cmd.OutOrStdout(), format, states)
	}

	if len(groups) == 0 {
		logInfo("No storage groups found. Create one with: vnxctl create <name>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLUNS\tFREE HLUS\tHOSTS\tUID")
	fmt.Fprintln(w, "----\t----\t---------\t-----\t---")

	for _, g := range groups {
		hosts := strings.Join(g.Hosts(), ",")
		if hosts == "" {
			hosts = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			g.Name(), len(g.UsedALUs()), len(g.FreeHLUs()), hosts, g.UID())
	}

	return w.Flush()
}
