package audit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLogger_LogAndEvents(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	now := time.Now().Truncate(time.Millisecond)

	events := []Event{
		{Timestamp: now, Type: EventCreate, Group: "sg1"},
		{Timestamp: now.Add(time.Second), Type: EventConnectHost, Group: "sg1", Details: "host=esx01"},
		{Timestamp: now.Add(2 * time.Second), Type: EventConflict, Group: "sg1", Details: "hlu=1"},
		{Timestamp: now.Add(3 * time.Second), Type: EventRemove, Group: "sg1"},
	}

	for _, e := range events {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	result, err := logger.Events("sg1")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(result) != len(events) {
		t.Fatalf("got %d events, want %d", len(result), len(events))
	}

	for i, e := range result {
		if e.Type != events[i].Type {
			t.Errorf("event %d: type = %q, want %q", i, e.Type, events[i].Type)
		}
		if e.Group != events[i].Group {
			t.Errorf("event %d: group = %q, want %q", i, e.Group, events[i].Group)
		}
		if e.Details != events[i].Details {
			t.Errorf("event %d: details = %q, want %q", i, e.Details, events[i].Details)
		}
		if e.ID == "" {
			t.Errorf("event %d: missing id", i)
		}
	}
}

func TestLogger_LogMapping(t *testing.T) {
	logger := NewLogger(t.TempDir())

	if err := logger.LogMapping(EventAttach, "sg1", 42, 3, "attempts=2"); err != nil {
		t.Fatalf("LogMapping failed: %v", err)
	}

	result, err := logger.Events("sg1")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("got %d events, want 1", len(result))
	}
	e := result[0]
	if e.ALU == nil || *e.ALU != 42 {
		t.Errorf("ALU = %v, want 42", e.ALU)
	}
	if e.HLU == nil || *e.HLU != 3 {
		t.Errorf("HLU = %v, want 3", e.HLU)
	}
	if e.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestLogger_EventsEmpty(t *testing.T) {
	logger := NewLogger(t.TempDir())

	result, err := logger.Events("nonexistent")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("got %d events, want 0", len(result))
	}
}

func TestLogger_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	if err := logger.LogEvent(EventCreate, "sg1", ""); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	path := filepath.Join(dir, "storagegroups", "sg1.events.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	f.WriteString("not json\n\n")
	f.Close()

	if err := logger.LogEvent(EventRemove, "sg1", ""); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	result, err := logger.Events("sg1")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("got %d events, want 2", len(result))
	}
}

func TestLogger_PathStaysInStateDir(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	if err := logger.LogEvent(EventCreate, "../../escape", ""); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	path, err := logger.eventPath("../../escape")
	if err != nil {
		t.Fatalf("eventPath failed: %v", err)
	}
	if !strings.HasPrefix(path, filepath.Join(dir, "storagegroups")+string(filepath.Separator)) {
		t.Errorf("eventPath = %q escapes state dir", path)
	}

	if err := logger.LogEvent(EventCreate, "", ""); err == nil {
		t.Error("LogEvent with empty group should fail")
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	logger := NewLogger(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := logger.LogMapping(EventAttach, "sg1", i, i+1, ""); err != nil {
				t.Errorf("LogMapping failed: %v", err)
			}
		}()
	}
	wg.Wait()

	result, err := logger.Events("sg1")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(result) != 20 {
		t.Errorf("got %d events, want 20", len(result))
	}
}

func TestLogger_Remove(t *testing.T) {
	logger := NewLogger(t.TempDir())

	if err := logger.LogEvent(EventCreate, "sg1", ""); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}
	if err := logger.Remove("sg1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	result, _ := logger.Events("sg1")
	if len(result) != 0 {
		t.Errorf("got %d events after Remove, want 0", len(result))
	}
	if err := logger.Remove("sg1"); err != nil {
		t.Errorf("second Remove failed: %v", err)
	}
}
