// Package app provides the application context for vnxctl.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Config   *config.Config         // Loaded configuration
//	    Paths    *config.Paths          // State locations
//	    Executor system.CommandExecutor // Runs naviseccli
//	    Backend  storagegroup.Backend   // Array access, built from Config if nil
//	    Audit    *audit.Logger          // Storage group event log
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New(app.WithConfig(cfg))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithConfig(testConfig),
//	    app.WithBackend(fakeArray),
//	)
//
// # Available Options
//
//	WithConfig(cfg)         // Custom configuration
//	WithExecutor(exec)      // Custom command executor
//	WithBackend(backend)    // Custom array backend
//	WithAudit(logger)       // Custom audit logger
package app
