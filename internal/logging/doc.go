// Package logging provides logging utilities for vnxctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("running naviseccli", "command", cmdline)
//	logging.Warn("hlu conflict, refreshing", "group", name, "attempt", n)
//
// Library packages take a component logger so their records can be told apart:
//
//	log := logging.Component("storagegroup")
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Attaching alu %d to %s...", alu, group)
//	logging.UserSuccess("Attached alu %d as hlu %d", alu, hlu)
//	logging.UserWarning("Storage group %s has no uid", group)
//	logging.UserError("Detach failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
