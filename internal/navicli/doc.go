// Package navicli drives the naviseccli command line to manage a VNX array.
//
// Client implements storagegroup.Backend. Every call builds a naviseccli
// command line from the connection settings (SP address, credentials or a
// security file, timeout) followed by the subcommand, runs it through a
// system.CommandExecutor and classifies the output into internal/errors
// codes. Calls go to SP A first and fall back to SP B when SP A cannot be
// reached.
package navicli
