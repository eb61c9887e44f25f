package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vnx-tools/vnxctl/internal/app"
	"github.com/vnx-tools/vnxctl/internal/audit"
	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

var attachCmd = &cobra.Command{
	Use:   "attach <group> <lun>",
	Short: "Attach a LUN to a storage group",
	Long: `Attach a LUN to a storage group and print the HLU it was given.

The LUN is given by ALU number or by name. When another host takes the
chosen HLU first, the storage group is reloaded and another HLU is tried,
up to --retry-limit attempts (0 retries until interrupted).`,
	Args: cobra.ExactArgs(2),
	RunE: runAttach,
}

var detachCmd = &cobra.Command{
	Use:   "detach <group> <lun>",
	Short: "Detach a LUN from a storage group",
	Args:  cobra.ExactArgs(2),
	RunE:  runDetach,
}

var detachAllCmd = &cobra.Command{
	Use:   "detach-all <lun>",
	Short: "Detach a LUN from every storage group holding it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetachAll,
}

var attachRetryLimit int

func init() {
	attachCmd.Flags().IntVar(&attachRetryLimit, "retry-limit", -1, "Maximum attach attempts on HLU conflicts (default from config)")
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(detachCmd)
	rootCmd.AddCommand(detachAllCmd)
}

func runAttach(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	g, err := loadGroup(ctx, args[0])
	if err != nil {
		return err
	}
	dev, err := app.Default.Device(args[1])
	if err != nil {
		return err
	}
	alu, err := dev.ResolveALU(ctx)
	if err != nil {
		return err
	}

	limit := app.Default.RetryLimit()
	if cmd.Flags().Changed("retry-limit") {
		limit = attachRetryLimit
	}

	hlu, err := g.Attach(ctx, storagegroup.LUN(alu), limit)
	if err != nil {
		eventType := audit.EventError
		if errors.HasCode(err, errors.ExitConflictRetryExceeded) {
			eventType = audit.EventConflict
		}
		record(audit.Event{Type: eventType, Group: g.Name(), ALU: &alu, Details: "attach: " + err.Error()})
		return err
	}

	record(audit.Event{Type: audit.EventAttach, Group: g.Name(), ALU: &alu, HLU: &hlu})
	fmt.Fprintln(cmd.OutOrStdout(), hlu)
	return nil
}

func runDetach(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	g, err := loadGroup(ctx, args[0])
	if err != nil {
		return err
	}
	dev, err := app.Default.Device(args[1])
	if err != nil {
		return err
	}
	alu, err := dev.ResolveALU(ctx)
	if err != nil {
		return err
	}
	hlu, _ := g.HLU(alu)

	if err := g.Detach(ctx, storagegroup.LUN(alu)); err != nil {
		record(audit.Event{Type: audit.EventError, Group: g.Name(), ALU: &alu, Details: "detach: " + err.Error()})
		return err
	}

	record(audit.Event{Type: audit.EventDetach, Group: g.Name(), ALU: &alu, HLU: &hlu})
	logSuccess("Detached LUN %d (HLU %d) from %s", alu, hlu, g.Name())
	return nil
}

func runDetachAll(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dev, err := app.Default.Device(args[0])
	if err != nil {
		return err
	}
	alu, err := dev.ResolveALU(ctx)
	if err != nil {
		return err
	}

	groups, err := listGroups(ctx)
	if err != nil {
		return fmt.Errorf("failed to list storage groups: %w", err)
	}

	detached, err := storagegroup.DetachFromAll(ctx, groups, storagegroup.LUN(alu))
	for _, name := range detached {
		record(audit.Event{Type: audit.EventDetach, Group: name, ALU: &alu})
	}
	if err != nil {
		return err
	}

	if len(detached) == 0 {
		logInfo("LUN %d is not attached to any storage group", alu)
		return nil
	}
	logSuccess("Detached LUN %d from %s", alu, strings.Join(detached, ", "))
	return nil
}
