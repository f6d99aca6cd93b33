package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/newbeginning12/flashcal/internal/grid"
)

// DebugLogger logs TUI events to a file. bubbletea owns the terminal, so
// this is the only way to watch the event flow live.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "flashcal-debug.log"

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

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{"key": msg.String()})
}

// LogMouse logs a mouse event.
func LogMouse(msg tea.MouseMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	// Motion without a button floods the log; skip it.
	if msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonNone {
		return
	}
	debugLog.log("MOUSE", map[string]any{
		"x":      msg.X,
		"y":      msg.Y,
		"button": int(msg.Button),
		"action": int(msg.Action),
		"ctrl":   msg.Ctrl,
	})
}

// LogIntent logs an intent drained from the engine.
func LogIntent(it grid.Intent) {
	if debugLog == nil || !debugLog.enabled {
		return
	}

	data := map[string]any{"type": fmt.Sprintf("%T", it)}
	switch it := it.(type) {
	case grid.MoveIntent:
		data["id"] = it.ID
		data["day"] = it.Day.Format("2006-01-02")
		data["start"] = it.Start
	case grid.CreateIntent:
		data["day"] = it.Day.Format("2006-01-02")
		data["start"] = it.Start
		data["duration"] = it.Duration
		data["title"] = it.Title
	case grid.OpenIntent:
		data["id"] = it.ID
	case grid.DeleteIntent:
		data["id"] = it.ID
	case grid.SetStatusIntent:
		data["id"] = it.ID
		data["status"] = string(it.Status)
	}
	debugLog.log("INTENT", data)
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}
