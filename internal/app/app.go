// Package app provides the application context for vnxctl.
// It allows dependency injection for testing.
package app

import (
	"fmt"
	"strconv"

	"github.com/vnx-tools/vnxctl/internal/audit"
	"github.com/vnx-tools/vnxctl/internal/config"
	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/logging"
	"github.com/vnx-tools/vnxctl/internal/navicli"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
	"github.com/vnx-tools/vnxctl/internal/system"
)

// App holds the application dependencies
type App struct {
	// Config is the loaded configuration
	Config *config.Config

	// Paths holds the state locations
	Paths *config.Paths

	// Executor runs naviseccli
	Executor system.CommandExecutor

	// Backend is the array backend; built from Config when nil
	Backend storagegroup.Backend

	// Audit records storage group changes
	Audit *audit.Logger
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets a custom configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(e system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = e
	}
}

// WithBackend sets a custom array backend
func WithBackend(b storagegroup.Backend) Option {
	return func(a *App) {
		a.Backend = b
	}
}

// WithAudit sets a custom audit logger
func WithAudit(l *audit.Logger) Option {
	return func(a *App) {
		a.Audit = l
	}
}

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		Config: config.Default(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Paths == nil {
		app.Paths = app.Config.Paths()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}
	if app.Audit == nil {
		app.Audit = audit.NewLogger(app.Paths.StateDir)
	}

	return app
}

// Client builds a naviseccli client from the configuration.
func (a *App) Client() (*navicli.Client, error) {
	if err := a.Config.ValidateArray(); err != nil {
		return nil, errors.ConfigError("array connection is not configured", err)
	}
	secfile, err := a.Config.SecurityFilePath()
	if err != nil {
		return nil, errors.ConfigError("invalid security file path", err)
	}
	arr := a.Config.Array
	return navicli.New(navicli.Options{
		Path:         arr.Naviseccli,
		SPA:          arr.SPA,
		SPB:          arr.SPB,
		Username:     arr.Username,
		Password:     arr.Password,
		Scope:        arr.Scope,
		SecurityFile: secfile,
		Timeout:      arr.Timeout.Duration,
		NoPoll:       arr.NoPoll,
		ExtraArgs:    arr.ExtraArgs,
	}, a.Executor)
}

// StorageBackend returns the injected backend or a naviseccli client.
func (a *App) StorageBackend() (storagegroup.Backend, error) {
	if a.Backend != nil {
		return a.Backend, nil
	}
	c, err := a.Client()
	if err != nil {
		return nil, err
	}
	a.Backend = c
	return c, nil
}

// GroupOptions returns the storage group options from the configuration.
func (a *App) GroupOptions() ([]storagegroup.Option, error) {
	policy, err := storagegroup.ParsePickPolicy(a.Config.StorageGroup.HLUPolicy)
	if err != nil {
		return nil, errors.ConfigError("invalid hlu policy", err)
	}
	return []storagegroup.Option{
		storagegroup.WithPickPolicy(policy),
		storagegroup.WithLogger(logging.Component("storagegroup")),
	}, nil
}

// RetryLimit returns the configured attach retry limit.
func (a *App) RetryLimit() int {
	return a.Config.StorageGroup.AttachRetryLimit
}

// Device parses a LUN argument. Numbers are ALUs; names need naviseccli.
func (a *App) Device(arg string) (storagegroup.Device, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 0 {
			return nil, errors.ValidationError(fmt.Sprintf("invalid lun number %d", n))
		}
		return storagegroup.LUN(n), nil
	}
	backend, err := a.StorageBackend()
	if err != nil {
		return nil, err
	}
	c, ok := backend.(*navicli.Client)
	if !ok {
		return nil, errors.ValidationError(fmt.Sprintf("lun %q must be given by number", arg))
	}
	return c.LUNByName(arg), nil
}

// Record writes an audit event. Failures are logged, not returned, so a
// read-only state dir does not fail array operations.
func (a *App) Record(event audit.Event) {
	if a.Audit == nil {
		return
	}
	if err := a.Audit.Log(event); err != nil {
		logging.Warn("failed to write audit event", "group", event.Group, "type", event.Type, "error", err)
	}
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
