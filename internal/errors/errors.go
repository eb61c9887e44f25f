package errors

import (
	"errors"
	"fmt"
)

// Exit codes for vnxctl
const (
	ExitSuccess               = 0
	ExitGeneralError          = 1
	ExitConfigError           = 2
	ExitCLINotAvailable       = 3
	ExitBackendError          = 4
	ExitSPUnreachable         = 5
	ExitStorageGroupError     = 6
	ExitStorageGroupNotFound  = 7
	ExitNoHLUAvailable        = 8
	ExitALUNumberInUse        = 9
	ExitConflictRetryExceeded = 10
	ExitAttachFailed          = 11
	ExitDetachNotFound        = 12
)

// VNXError is the base error type for vnxctl
type VNXError struct {
	Code    int
	Message string
	Cause   error
}

func (e *VNXError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *VNXError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *VNXError) ExitCode() int {
	return e.Code
}

// New creates a new VNXError
func New(code int, message string) *VNXError {
	return &VNXError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a VNXError
func Wrap(code int, message string, cause error) *VNXError {
	return &VNXError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NoHLUAvailable is returned when every HLU of a storage group is taken.
func NoHLUAvailable(group string, max int) *VNXError {
	return New(ExitNoHLUAvailable, fmt.Sprintf("no hlu number available for attach to storage group %s (1-%d in use)", group, max))
}

// ALUNumberInUse is the backend conflict raised when the requested HLU was
// taken by someone else between selection and commit.
func ALUNumberInUse(message string, cause error) *VNXError {
	return Wrap(ExitALUNumberInUse, message, cause)
}

// ConflictRetryExceeded reports that ALUNumberInUse persisted for every attempt.
func ConflictRetryExceeded(group string, alu, attempts int, cause error) *VNXError {
	return Wrap(ExitConflictRetryExceeded,
		fmt.Sprintf("attach of alu %d to storage group %s still conflicting after %d attempts", alu, group, attempts), cause)
}

// AttachFailed returns an error for a rejected add-hlu call
func AttachFailed(group string, alu int, cause error) *VNXError {
	return Wrap(ExitAttachFailed, fmt.Sprintf("failed to attach alu %d to storage group %s", alu, group), cause)
}

// DetachNotFound returns an error for detaching a lun that is not attached
func DetachNotFound(group string, alu int) *VNXError {
	return New(ExitDetachNotFound, fmt.Sprintf("specified lun %d is not attached to storage group %s", alu, group))
}

// StorageGroupError returns a generic storage group failure
func StorageGroupError(message string, cause error) *VNXError {
	return Wrap(ExitStorageGroupError, message, cause)
}

// CreateStorageGroupFailed returns an error for a failed create call
func CreateStorageGroupFailed(name string, cause error) *VNXError {
	return Wrap(ExitStorageGroupError, fmt.Sprintf("failed to create storage group %q", name), cause)
}

// StorageGroupNotFound returns an error for a missing storage group
func StorageGroupNotFound(name string) *VNXError {
	return New(ExitStorageGroupNotFound, fmt.Sprintf("storage group not found: %s", name))
}

// BackendError returns an error for unclassified naviseccli failures
func BackendError(message string, cause error) *VNXError {
	return Wrap(ExitBackendError, message, cause)
}

// CLINotAvailable returns an error when naviseccli cannot be executed
func CLINotAvailable(path string, cause error) *VNXError {
	return Wrap(ExitCLINotAvailable,
		fmt.Sprintf("%s not found. please make sure it's installed and available in path", path), cause)
}

// SPUnreachable returns an error when a storage processor cannot be reached
func SPUnreachable(sp string, cause error) *VNXError {
	return Wrap(ExitSPUnreachable, fmt.Sprintf("storage processor %s is unreachable", sp), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *VNXError {
	return Wrap(ExitConfigError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *VNXError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var vnxErr *VNXError
	if errors.As(err, &vnxErr) {
		return vnxErr.ExitCode()
	}
	return ExitGeneralError
}

// HasCode reports whether any VNXError in err's chain carries code.
func HasCode(err error, code int) bool {
	for err != nil {
		var vnxErr *VNXError
		if !errors.As(err, &vnxErr) {
			return false
		}
		if vnxErr.Code == code {
			return true
		}
		err = vnxErr.Cause
	}
	return false
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
