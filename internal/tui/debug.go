package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebugLogger logs TUI state, keystrokes, and events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "tourboard-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{file: f, enabled: true}
	debugLog.log("DEBUG_START", map[string]any{
		"log_file": DebugLogPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = d.file.Write(append(line, '\n'))
}

// LogKeyPress logs a keystroke.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.log("KEY", map[string]any{"key": msg.String()})
}

// LogDrag logs a drag lifecycle event.
func LogDrag(event, bookingID, target string) {
	debugLog.log("DRAG", map[string]any{
		"phase":   event,
		"booking": bookingID,
		"target":  target,
	})
}

// LogMutation logs a committed, undone, or redone operation.
func LogMutation(kind, description string) {
	debugLog.log("MUTATION", map[string]any{
		"kind": kind,
		"desc": description,
	})
}

// LogError logs an error shown to the dispatcher.
func LogError(err error) {
	if err == nil {
		return
	}
	debugLog.log("ERROR", map[string]any{"error": err.Error()})
}
