package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// LogEntry is one message captured by CaptureLogger.
type LogEntry struct {
	Level string
	Msg   string
	Args  []any
}

// CaptureLogger records every log call for later assertions.
type CaptureLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{}
}

func (l *CaptureLogger) Debug(msg string, args ...any) { l.add("DEBUG", msg, args) }
func (l *CaptureLogger) Info(msg string, args ...any)  { l.add("INFO", msg, args) }
func (l *CaptureLogger) Warn(msg string, args ...any)  { l.add("WARN", msg, args) }
func (l *CaptureLogger) Error(msg string, args ...any) { l.add("ERROR", msg, args) }

func (l *CaptureLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
}

// Entries returns a copy of all captured entries.
func (l *CaptureLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// Has reports whether a message at level containing substr was logged.
func (l *CaptureLogger) Has(level, substr string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}

// Count returns the number of entries at level.
func (l *CaptureLogger) Count(level string) int {
	n := 0
	for _, e := range l.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Attr returns the value logged for key on the first entry whose message contains substr.
func (l *CaptureLogger) Attr(substr, key string) (string, bool) {
	for _, e := range l.Entries() {
		if !strings.Contains(e.Msg, substr) {
			continue
		}
		for i := 0; i+1 < len(e.Args); i += 2 {
			if k, ok := e.Args[i].(string); ok && k == key {
				return fmt.Sprint(e.Args[i+1]), true
			}
		}
	}
	return "", false
}
