// Package audit provides structured event logging for storage group changes.
// Events are stored as JSON Lines (JSONL) files, one per storage group.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/google/uuid"
)

// EventType classifies a storage group event.
type EventType string

const (
	EventCreate         EventType = "create"
	EventRemove         EventType = "remove"
	EventAttach         EventType = "attach"
	EventDetach         EventType = "detach"
	EventConflict       EventType = "conflict"
	EventConnectHost    EventType = "connect-host"
	EventDisconnectHost EventType = "disconnect-host"
	EventSetPath        EventType = "set-path"
	EventLowHLUs        EventType = "low-hlus"
	EventError          EventType = "error"
)

// Event represents a single audit log entry.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Group     string    `json:"group"`
	ALU       *int      `json:"alu,omitempty"`
	HLU       *int      `json:"hlu,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Logger writes and reads audit events for storage groups.
// Events are stored in {stateDir}/storagegroups/{name}.events.jsonl.
type Logger struct {
	stateDir string
	mu       sync.Mutex
}

// NewLogger creates a new audit logger rooted at stateDir.
func NewLogger(stateDir string) *Logger {
	return &Logger{stateDir: stateDir}
}

// eventPath returns the path to the JSONL event log for a storage group.
// The name cannot escape the storagegroups directory.
func (l *Logger) eventPath(group string) (string, error) {
	if group == "" {
		return "", fmt.Errorf("storage group name is required")
	}
	return securejoin.SecureJoin(filepath.Join(l.stateDir, "storagegroups"), group+".events.jsonl")
}

// Log appends an event to the storage group's audit log.
func (l *Logger) Log(event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	path, err := l.eventPath(event.Group)
	if err != nil {
		return fmt.Errorf("invalid audit log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, group, details string) error {
	return l.Log(Event{
		Type:    eventType,
		Group:   group,
		Details: details,
	})
}

// LogMapping logs an event about one HLU/ALU pair.
func (l *Logger) LogMapping(eventType EventType, group string, alu, hlu int, details string) error {
	return l.Log(Event{
		Type:    eventType,
		Group:   group,
		ALU:     &alu,
		HLU:     &hlu,
		Details: details,
	})
}

// Events reads all events for a storage group in chronological order.
func (l *Logger) Events(group string) ([]Event, error) {
	path, err := l.eventPath(group)
	if err != nil {
		return nil, fmt.Errorf("invalid audit log path: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}

// Remove deletes the audit log for a storage group.
func (l *Logger) Remove(group string) error {
	path, err := l.eventPath(group)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
