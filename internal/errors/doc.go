// Package errors provides typed errors with exit codes for vnxctl.
//
// # Error Types
//
// VNXError is the base error type that wraps an error with an exit code:
//
//	type VNXError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Each storage group failure kind has its own exit code so scripts can tell
// contention apart from a real failure:
//
//	ExitSuccess               = 0
//	ExitGeneralError          = 1
//	ExitConfigError           = 2
//	ExitCLINotAvailable       = 3  // naviseccli missing from PATH
//	ExitBackendError          = 4  // unclassified naviseccli failure
//	ExitSPUnreachable         = 5
//	ExitStorageGroupError     = 6  // create/remove/connect/disconnect/detach failed
//	ExitStorageGroupNotFound  = 7
//	ExitNoHLUAvailable        = 8  // HLU range exhausted
//	ExitALUNumberInUse        = 9  // backend rejected the HLU, retryable
//	ExitConflictRetryExceeded = 10 // ALUNumberInUse persisted past the retry limit
//	ExitAttachFailed          = 11
//	ExitDetachNotFound        = 12
//
// # Inspecting Errors
//
// GetExitCode returns the code of the outermost VNXError in a chain.
// HasCode looks through the whole chain, which is what the attach retry
// loop uses to recognise a conflict wrapped by the CLI layer:
//
//	if errors.HasCode(err, errors.ExitALUNumberInUse) {
//	    // refresh and retry
//	}
package errors
