package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vnx-tools/vnxctl/internal/audit"
	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

var connectHostCmd = &cobra.Command{
	Use:   "connect-host <group> <host>",
	Short: "Connect a registered host to a storage group",
	Args:  cobra.ExactArgs(2),
	RunE:  runConnectHost,
}

var disconnectHostCmd = &cobra.Command{
	Use:   "disconnect-host <group> <host>",
	Short: "Disconnect a host from a storage group",
	Args:  cobra.ExactArgs(2),
	RunE:  runDisconnectHost,
}

var setPathCmd = &cobra.Command{
	Use:   "set-path <group>",
	Short: "Register an initiator path to a storage group",
	Long: `Register an initiator path from a host HBA to an SP port.

The port type is taken from the HBA UID: iSCSI IQNs contain '.', FC WWNs
contain ':'. Virtual ports are only used for iSCSI.`,
	Args: cobra.ExactArgs(1),
	RunE: runSetPath,
}

var (
	setPathHBAUID string
	setPathSP     string
	setPathPort   int
	setPathVPort  int
	setPathHost   string
	setPathIP     string
)

func init() {
	setPathCmd.Flags().StringVar(&setPathHBAUID, "hba-uid", "", "Initiator UID (IQN or WWN)")
	setPathCmd.Flags().StringVar(&setPathSP, "sp", "", "Storage processor (A or B)")
	setPathCmd.Flags().IntVar(&setPathPort, "port", 0, "SP port ID")
	setPathCmd.Flags().IntVar(&setPathVPort, "vport", -1, "SP virtual port ID (iSCSI only)")
	setPathCmd.Flags().StringVar(&setPathHost, "host", "", "Host name")
	setPathCmd.Flags().StringVar(&setPathIP, "ip", "", "Host IP address")
	_ = setPathCmd.MarkFlagRequired("hba-uid")
	_ = setPathCmd.MarkFlagRequired("sp")

	rootCmd.AddCommand(connectHostCmd)
	rootCmd.AddCommand(disconnectHostCmd)
	rootCmd.AddCommand(setPathCmd)
}

func runConnectHost(cmd *cobra.Command, args []string) error {
	g, err := loadGroup(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	host := args[1]

	if err := g.ConnectHost(cmd.Context(), host); err != nil {
		record(audit.Event{Type: audit.EventError, Group: g.Name(), Details: "connect-host " + host + ": " + err.Error()})
		return err
	}

	record(audit.Event{Type: audit.EventConnectHost, Group: g.Name(), Details: host})
	logSuccess("Connected host %s to %s", host, g.Name())
	return nil
}

func runDisconnectHost(cmd *cobra.Command, args []string) error {
	g, err := loadGroup(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	host := args[1]

	if err := g.DisconnectHost(cmd.Context(), host); err != nil {
		record(audit.Event{Type: audit.EventError, Group: g.Name(), Details: "disconnect-host " + host + ": " + err.Error()})
		return err
	}

	record(audit.Event{Type: audit.EventDisconnectHost, Group: g.Name(), Details: host})
	logSuccess("Disconnected host %s from %s", host, g.Name())
	return nil
}

func runSetPath(cmd *cobra.Command, args []string) error {
	sp, err := storagegroup.ParseSP(setPathSP)
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	port := storagegroup.Port{SP: sp, PortID: setPathPort}
	if cmd.Flags().Changed("vport") {
		vport := setPathVPort
		port.VPortID = &vport
	}

	g, err := loadGroup(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	opts := storagegroup.PathOptions{
		Port:     port,
		HBAUID:   setPathHBAUID,
		HostName: setPathHost,
		HostIP:   setPathIP,
	}
	if err := g.SetPath(cmd.Context(), opts); err != nil {
		record(audit.Event{Type: audit.EventError, Group: g.Name(), Details: "set-path " + setPathHBAUID + ": " + err.Error()})
		return err
	}

	details := fmt.Sprintf("%s -> %s-%d", setPathHBAUID, sp, setPathPort)
	record(audit.Event{Type: audit.EventSetPath, Group: g.Name(), Details: details})
	logSuccess("Registered path %s on %s", details, g.Name())
	return nil
}
