package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vnx-tools/vnxctl/internal/app"
	"github.com/vnx-tools/vnxctl/internal/audit"
)

var auditLogCmd = &cobra.Command{
	Use:   "audit-log <group>",
	Short: "Display the audit trail for a storage group",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditLog,
}

var auditLogJSON bool

func init() {
	auditLogCmd.Flags().BoolVar(&auditLogJSON, "json", false, "Output events as JSON lines")
	rootCmd.AddCommand(auditLogCmd)
}

func runAuditLog(cmd *cobra.Command, args []string) error {
	name := args[0]
	logger := app.Default.Audit
	if logger == nil {
		logger = audit.NewLogger(app.Default.Paths.StateDir)
	}

	events, err := logger.Events(name)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	if len(events) == 0 {
		logInfo("No events found for storage group %s", name)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if auditLogJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}

		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		fmt.Fprintf(out, "[%s] %-15s %s%s\n", ts, e.Type, e.Group, eventSuffix(e))
	}

	return nil
}

func eventSuffix(e audit.Event) string {
	var parts []string
	if e.ALU != nil {
		parts = append(parts, fmt.Sprintf("alu=%d", *e.ALU))
	}
	if e.HLU != nil {
		parts = append(parts, fmt.Sprintf("hlu=%d", *e.HLU))
	}
	if e.Details != "" {
		parts = append(parts, e.Details)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, " ") + ")"
}
