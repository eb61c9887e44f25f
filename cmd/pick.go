package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vnx-tools/vnxctl/internal/audit"
	"github.com/vnx-tools/vnxctl/internal/logging"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
	"github.com/vnx-tools/vnxctl/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive storage group picker",
	Long: `Opens an interactive TUI for browsing storage groups.

Use arrow keys or j/k to navigate, / to filter, Enter to show.

Actions:
  Enter  - Show HLU/ALU pairs of the selected storage group
  d      - Remove the selected storage group
  q/Esc  - Quit`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logging.Debug("picker mode started")

	groups, err := listGroups(ctx)
	if err != nil {
		return fmt.Errorf("failed to list storage groups: %w", err)
	}

	if len(groups) == 0 {
		logInfo("No storage groups found. Create one with: vnxctl create <name>")
		return nil
	}

	states := make([]*storagegroup.State, len(groups))
	for i, g := range groups {
		states[i] = g.State()
	}

	result, err := tui.RunPicker(states, storagegroup.DefaultLimits)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	if result.Group == nil {
		return nil
	}

	switch result.Action {
	case tui.ActionShow:
		return runShow(cmd, []string{result.Group.Name})

	case tui.ActionRemove:
		g, err := loadGroup(ctx, result.Group.Name)
		if err != nil {
			return err
		}
		if err := g.Remove(ctx); err != nil {
			return err
		}
		record(audit.Event{Type: audit.EventRemove, Group: g.Name(), Details: "picker"})
		logSuccess("Removed storage group %s", g.Name())
	}

	return nil
}
