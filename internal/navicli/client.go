package navicli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/logging"
	"github.com/vnx-tools/vnxctl/internal/metrics"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
	"github.com/vnx-tools/vnxctl/internal/system"
)

// DefaultPath is the naviseccli binary looked up in PATH.
const DefaultPath = "naviseccli"

// Options holds the connection settings passed to every naviseccli call.
type Options struct {
	// Path is the naviseccli binary
	Path string

	// SPA and SPB are the storage processor addresses. SPB is optional.
	SPA string
	SPB string

	Username string
	Password string
	Scope    string

	// SecurityFile replaces Username/Password when set
	SecurityFile string

	// Timeout is passed as -t, in whole seconds
	Timeout time.Duration

	// NoPoll adds -np so the SP skips polling before answering
	NoPoll bool

	// ExtraArgs is a shell-quoted string appended to the global options
	ExtraArgs string
}

// Client runs naviseccli commands.
type Client struct {
	opts  Options
	extra []string
	exec  system.CommandExecutor
}

// New creates a Client. A nil executor uses system.DefaultExecutor.
func New(opts Options, executor system.CommandExecutor) (*Client, error) {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.SPA == "" && opts.SPB == "" {
		return nil, errors.ConfigError("no storage processor address configured", nil)
	}
	extra, err := shellquote.Split(opts.ExtraArgs)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid extra naviseccli arguments %q", opts.ExtraArgs), err)
	}
	if executor == nil {
		executor = system.DefaultExecutor()
	}
	return &Client{opts: opts, extra: extra, exec: executor}, nil
}

// Address returns the configured address of sp.
func (c *Client) Address(sp storagegroup.SP) string {
	if sp == storagegroup.SPB {
		return c.opts.SPB
	}
	return c.opts.SPA
}

func (c *Client) globalArgs(host string) []string {
	args := []string{"-h", host}
	if c.opts.SecurityFile != "" {
		args = append(args, "-secfilepath", c.opts.SecurityFile)
	} else if c.opts.Username != "" {
		args = append(args, "-user", c.opts.Username, "-password", c.opts.Password, "-scope", c.scope())
	}
	if c.opts.Timeout > 0 {
		secs := int(c.opts.Timeout.Round(time.Second) / time.Second)
		args = append(args, "-t", strconv.Itoa(max(secs, 1)))
	}
	if c.opts.NoPoll {
		args = append(args, "-np")
	}
	return append(args, c.extra...)
}

func (c *Client) scope() string {
	if c.opts.Scope == "" {
		return "0"
	}
	return c.opts.Scope
}

// redact renders a command line for logs with the password masked.
func (c *Client) redact(args []string) string {
	shown := make([]string, len(args))
	copy(shown, args)
	for i := 0; i < len(shown)-1; i++ {
		if shown[i] == "-password" {
			shown[i+1] = "REDACTED"
		}
	}
	return shellquote.Join(append([]string{c.opts.Path}, shown...)...)
}

// run executes a command on SP A, then on SP B if SP A is unreachable.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	var lastErr error
	for _, sp := range []storagegroup.SP{storagegroup.SPA, storagegroup.SPB} {
		host := c.Address(sp)
		if host == "" {
			continue
		}
		out, err := c.runOn(ctx, sp, args...)
		if err == nil || !errors.HasCode(err, errors.ExitSPUnreachable) {
			return out, err
		}
		logging.Warn("storage processor unreachable", "sp", sp, "host", host, "error", err)
		lastErr = err
	}
	return "", lastErr
}

// runOn executes a command against one storage processor.
func (c *Client) runOn(ctx context.Context, sp storagegroup.SP, args ...string) (string, error) {
	host := c.Address(sp)
	if host == "" {
		return "", errors.ConfigError(fmt.Sprintf("no address configured for SP %s", sp), nil)
	}
	full := append(c.globalArgs(host), args...)
	label := commandLabel(args)

	logging.Debug("running naviseccli", "sp", sp, "cmd", c.redact(full))
	start := time.Now()
	out, err := c.exec.Execute(ctx, c.opts.Path, full...)
	elapsed := time.Since(start).Seconds()

	if ctx.Err() != nil {
		metrics.ObserveCLI(label, "canceled", elapsed)
		return "", fmt.Errorf("naviseccli %s: %w", label, ctx.Err())
	}
	if cerr := classify(c.opts.Path, string(sp), out, err); cerr != nil {
		metrics.ObserveCLI(label, "error", elapsed)
		logging.Debug("naviseccli failed", "sp", sp, "command", label, "exit", system.ExitCode(err), "output", strings.TrimSpace(string(out)))
		return string(out), cerr
	}
	metrics.ObserveCLI(label, "ok", elapsed)
	return string(out), nil
}

// commandLabel keeps the object and the action, e.g. "storagegroup -addhlu".
func commandLabel(args []string) string {
	n := min(len(args), 2)
	return strings.Join(args[:n], " ")
}
