package monitor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vnx-tools/vnxctl/internal/audit"
	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/logging"
	"github.com/vnx-tools/vnxctl/internal/storagegroup"
	"github.com/vnx-tools/vnxctl/internal/testutil"
)

func smallGroups() []storagegroup.Option {
	return []storagegroup.Option{
		storagegroup.WithLimits(storagegroup.NewLimits(4)),
		storagegroup.WithLogger(logging.Discard()),
	}
}

func TestMonitor_New(t *testing.T) {
	m := New(30*time.Second, testutil.NewArray())
	if m.interval != 30*time.Second {
		t.Errorf("interval = %v, want %v", m.interval, 30*time.Second)
	}
	if m.lowWatermark != DefaultLowWatermark {
		t.Errorf("lowWatermark = %d, want %d", m.lowWatermark, DefaultLowWatermark)
	}
	if m.auditLog != nil {
		t.Error("auditLog should default to nil")
	}
}

func TestMonitor_Options(t *testing.T) {
	auditLogger := audit.NewLogger(t.TempDir())

	m := New(60*time.Second, testutil.NewArray(),
		WithLowWatermark(2),
		WithAuditLogger(auditLogger),
		WithTextfile("/tmp/vnxctl.prom"),
	)

	if m.lowWatermark != 2 {
		t.Errorf("lowWatermark = %d, want 2", m.lowWatermark)
	}
	if m.auditLog == nil {
		t.Error("auditLog should be set")
	}
	if m.textfile != "/tmp/vnxctl.prom" {
		t.Errorf("textfile = %q", m.textfile)
	}
}

func TestMonitor_CheckAllEmpty(t *testing.T) {
	m := New(time.Second, testutil.NewArray())

	results := m.checkAll(context.Background())
	if len(results) != 0 {
		t.Errorf("got %d results, want 0 for an empty array", len(results))
	}
}

func TestMonitor_CheckAllListError(t *testing.T) {
	array := testutil.NewArray()
	array.Errors["StorageGroups"] = errors.SPUnreachable("A", nil)

	if results := New(time.Second, array).checkAll(context.Background()); results != nil {
		t.Errorf("results = %v, want nil on list failure", results)
	}
}

func TestMonitor_CheckAllLowWatermark(t *testing.T) {
	array := testutil.NewArray()
	array.AddGroup("busy",
		storagegroup.Mapping{HLU: 1, ALU: 10},
		storagegroup.Mapping{HLU: 2, ALU: 11},
		storagegroup.Mapping{HLU: 3, ALU: 12},
	)
	array.AddGroup("idle")

	stateDir := t.TempDir()
	auditLogger := audit.NewLogger(stateDir)
	m := New(time.Second, array,
		WithLowWatermark(1),
		WithAuditLogger(auditLogger),
		WithGroupOptions(smallGroups()...),
	)

	results := m.checkAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Group != "busy" || results[0].Used != 3 || results[0].Free != 1 || !results[0].Low {
		t.Errorf("busy = %+v", results[0])
	}
	if results[1].Group != "idle" || results[1].Free != 4 || results[1].Low {
		t.Errorf("idle = %+v", results[1])
	}

	// A second check must not report the same group again
	m.checkAll(context.Background())

	events, err := auditLogger.Events("busy")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d audit events, want 1", len(events))
	}
	if events[0].Type != audit.EventLowHLUs {
		t.Errorf("event type = %q, want %q", events[0].Type, audit.EventLowHLUs)
	}

	idle, err := auditLogger.Events("idle")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(idle) != 0 {
		t.Errorf("idle group got %d audit events, want 0", len(idle))
	}
}

func TestMonitor_WritesTextfile(t *testing.T) {
	array := testutil.NewArray()
	array.AddGroup("sg1")
	path := filepath.Join(t.TempDir(), "vnxctl.prom")

	New(time.Second, array, WithTextfile(path)).checkAll(context.Background())

	if _, err := os.Stat(path); err != nil {
		t.Errorf("metrics textfile not written: %v", err)
	}
}

func TestMonitor_RunCancellation(t *testing.T) {
	m := New(100*time.Millisecond, testutil.NewArray())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx)
	}()

	// Let it run briefly then cancel
	time.Sleep(250 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after context cancellation")
	}
}
