package navicli

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vnx-tools/vnxctl/internal/errors"
)

// outputErrors maps known naviseccli messages to error codes. Matching is
// on the output because naviseccli exits 0 for some failures.
var outputErrors = []struct {
	match string
	code  int
}{
	{"Requested Host LUN Number already in use", errors.ExitALUNumberInUse},
	{"LUN already exists in the specified storage group", errors.ExitAttachFailed},
	{"Storage Group name already in use", errors.ExitStorageGroupError},
	{"does not match any storage groups", errors.ExitStorageGroupNotFound},
	{"Storage Group does not exist", errors.ExitStorageGroupNotFound},
	{"The HLU number specified is not in the storage group", errors.ExitBackendError},
	{"A network error occurred while trying to connect", errors.ExitSPUnreachable},
	{"Cannot access the storage system", errors.ExitSPUnreachable},
	{"Unable to establish a secure connection", errors.ExitSPUnreachable},
	{"Connection refused", errors.ExitSPUnreachable},
	{"Security file not found", errors.ExitConfigError},
	{"Authentication failed", errors.ExitConfigError},
}

// classify turns a naviseccli result into a typed error, or nil on success.
func classify(path, sp string, out []byte, runErr error) error {
	if runErr != nil && errors.Is(runErr, exec.ErrNotFound) {
		return errors.CLINotAvailable(path, runErr)
	}

	text := string(out)
	for _, e := range outputErrors {
		if !strings.Contains(text, e.match) {
			continue
		}
		msg := lineContaining(text, e.match)
		if e.code == errors.ExitSPUnreachable {
			return errors.SPUnreachable(sp, fmt.Errorf("%s", msg))
		}
		return errors.Wrap(e.code, msg, runErr)
	}

	if runErr != nil {
		msg := firstLine(text)
		if msg == "" {
			msg = "naviseccli failed"
		}
		return errors.BackendError(msg, runErr)
	}
	return nil
}

func lineContaining(text, match string) string {
	s := bufio.NewScanner(strings.NewReader(text))
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); strings.Contains(line, match) {
			return line
		}
	}
	return match
}

func firstLine(text string) string {
	s := bufio.NewScanner(strings.NewReader(text))
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			return line
		}
	}
	return ""
}
