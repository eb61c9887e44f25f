package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vnx-tools/vnxctl/internal/audit"
	"github.com/vnx-tools/vnxctl/internal/config"
	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

var createCmd = &cobra.Command{
	Use:   "create <group>",
	Short: "Create a storage group",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreate,
}

var removeCmd = &cobra.Command{
	Use:   "remove <group>",
	Short: "Destroy a storage group",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(removeCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := config.ValidateStorageGroupName(name); err != nil {
		return errors.ValidationError(err.Error())
	}

	b, err := backend()
	if err != nil {
		return err
	}
	opts, err := groupOptions()
	if err != nil {
		return err
	}

	g, err := storagegroup.Create(cmd.Context(), b, name, opts...)
	if err != nil {
		record(audit.Event{Type: audit.EventError, Group: name, Details: "create: " + err.Error()})
		return err
	}

	record(audit.Event{Type: audit.EventCreate, Group: name, Details: "uid=" + g.UID()})
	logSuccess("Created storage group %s", name)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	g, err := loadGroup(cmd.Context(), name)
	if err != nil {
		return err
	}

	if n := len(g.UsedALUs()); n > 0 {
		logWarning("Storage group %s still holds %d LUNs", name, n)
	}

	if err := g.Remove(cmd.Context()); err != nil {
		record(audit.Event{Type: audit.EventError, Group: name, Details: "remove: " + err.Error()})
		return err
	}

	record(audit.Event{Type: audit.EventRemove, Group: name})
	logSuccess("Removed storage group %s", name)
	return nil
}
