package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <group>",
	Short: "Show the HLU/ALU pairs and HBA ports of a storage group",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showOutput string

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "table", "Output format: table, json or yaml")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(showOutput)
	if err != nil {
		return err
	}

	g, err := loadGroup(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if format != formatTable {
		return encode(cmd.OutOrStdout(), format, g.State())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Storage Group: %s\n", g.Name())
	fmt.Fprintf(out, "UID:           %s\n", g.UID())
	fmt.Fprintf(out, "Shareable:     %t\n", g.Shareable())
	fmt.Fprintf(out, "Free HLUs:     %d\n\n", len(g.FreeHLUs()))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HLU\tALU")
	fmt.Fprintln(w, "---\t---")
	for _, m := range g.Mappings() {
		fmt.Fprintf(w, "%d\t%d\n", m.HLU, m.ALU)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	ports := g.HBAPorts()
	if len(ports) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HBA UID\tTYPE\tSP PORT\tHOST\tIP")
	fmt.Fprintln(w, "-------\t----\t-------\t----\t--")
	for _, p := range ports {
		spPort := p.SPPort
		if spPort == "" {
			spPort = fmt.Sprintf("%s-%d", p.SP, p.PortID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.UID, p.PortType(), spPort, p.HostName, p.HostIP)
	}
	return w.Flush()
}
