// Package monitor periodically reloads storage groups and reports groups
// running out of HLUs.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/vnx-tools/vnxctl/internal/audit"
	"github.com/vnx-tools/vnxctl/internal/logging"
	"github.com/vnx-tools/vnxctl/internal/metrics"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

// DefaultLowWatermark is the free HLU count at or below which a group is
// reported.
const DefaultLowWatermark = 8

// CheckResult holds the result of a single storage group check.
type CheckResult struct {
	Group string
	Used  int
	Free  int
	Low   bool
}

// Monitor periodically checks the HLU usage of all storage groups.
type Monitor struct {
	interval     time.Duration
	backend      storagegroup.Backend
	groupOpts    []storagegroup.Option
	lowWatermark int
	textfile     string
	auditLog     *audit.Logger

	// low tracks groups already reported, so only transitions are audited.
	low map[string]bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithAuditLogger sets the audit logger for recording low HLU events.
func WithAuditLogger(logger *audit.Logger) Option {
	return func(m *Monitor) {
		m.auditLog = logger
	}
}

// WithLowWatermark sets the free HLU count that triggers a report.
func WithLowWatermark(n int) Option {
	return func(m *Monitor) {
		m.lowWatermark = n
	}
}

// WithTextfile writes the metrics registry to path after every check.
func WithTextfile(path string) Option {
	return func(m *Monitor) {
		m.textfile = path
	}
}

// WithGroupOptions sets the options used to load storage groups.
func WithGroupOptions(opts ...storagegroup.Option) Option {
	return func(m *Monitor) {
		m.groupOpts = opts
	}
}

// New creates a new Monitor.
func New(interval time.Duration, backend storagegroup.Backend, opts ...Option) *Monitor {
	m := &Monitor{
		interval:     interval,
		backend:      backend,
		lowWatermark: DefaultLowWatermark,
		low:          make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run starts the monitoring loop. It blocks until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	logging.Debug("starting storage group monitor", "interval", m.interval, "lowWatermark", m.lowWatermark)

	// Run an immediate check, then loop on interval.
	m.checkAll(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Debug("storage group monitor stopping")
			return ctx.Err()
		case <-ticker.C:
			m.checkAll(ctx)
		}
	}
}

// checkAll reloads every storage group. Loading a group publishes its free
// HLU gauge.
func (m *Monitor) checkAll(ctx context.Context) []CheckResult {
	groups, err := storagegroup.List(ctx, m.backend, m.groupOpts...)
	if err != nil {
		logging.Warn("monitor failed to list storage groups", "error", err)
		return nil
	}

	seen := make(map[string]bool, len(groups))
	results := make([]CheckResult, 0, len(groups))
	for _, g := range groups {
		name := g.Name()
		seen[name] = true

		result := CheckResult{
			Group: name,
			Used:  len(g.UsedHLUs()),
			Free:  len(g.FreeHLUs()),
		}
		result.Low = result.Free <= m.lowWatermark
		results = append(results, result)

		switch {
		case result.Low && !m.low[name]:
			logging.Warn("storage group is running out of HLUs", "group", name, "free", result.Free)
			if m.auditLog != nil {
				_ = m.auditLog.LogEvent(audit.EventLowHLUs, name, fmt.Sprintf("%d free", result.Free))
			}
		case !result.Low && m.low[name]:
			logging.Info("storage group HLUs recovered", "group", name, "free", result.Free)
		}
		m.low[name] = result.Low
	}

	for name := range m.low {
		if !seen[name] {
			delete(m.low, name)
		}
	}

	if m.textfile != "" {
		if err := metrics.WriteTextfile(m.textfile); err != nil {
			logging.Warn("monitor failed to write metrics", "path", m.textfile, "error", err)
		}
	}

	return results
}
