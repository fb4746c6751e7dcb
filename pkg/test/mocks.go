package test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"setupdeps/pkg/log"
)

// MockCommandRunner is a shared mock implementation of runner.CommandRunner for testing.
// It records executed commands and allows setting up errors.
// Commands are keyed by their space-joined command line, e.g. "python3 -m pip install requests".
type MockCommandRunner struct {
	Commands []string         // Executed command lines, in order
	Errors   map[string]error // Error by command line
}

// NewMockCommandRunner creates a new MockCommandRunner with initialized maps.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		Commands: []string{},
		Errors:   make(map[string]error),
	}
}

// Run records the command and returns the configured error, if any.
func (r *MockCommandRunner) Run(name string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	r.Commands = append(r.Commands, key)

	if err, ok := r.Errors[key]; ok {
		return nil, err
	}
	return nil, nil
}

// SetError configures an error for a command line.
func (r *MockCommandRunner) SetError(command string, err error) {
	r.Errors[command] = err
}

// Reset clears all tracked commands and configurations.
func (r *MockCommandRunner) Reset() {
	r.Commands = []string{}
	r.Errors = make(map[string]error)
}

// MockLogger is a shared mock implementation of Logger for testing.
// It captures logged messages for verification.
type MockLogger struct {
	Messages []string
	Level    slog.Level

	attrs  []any
	parent *MockLogger
}

// NewMockLogger creates a new MockLogger with the specified level.
func NewMockLogger(level slog.Level) *MockLogger {
	return &MockLogger{
		Messages: []string{},
		Level:    level,
	}
}

// Debug captures debug messages.
func (l *MockLogger) Debug(msg string, args ...any) {
	if l.Level <= slog.LevelDebug {
		l.captureMessage("DEBUG", msg, args...)
	}
}

// Info captures info messages.
func (l *MockLogger) Info(msg string, args ...any) {
	if l.Level <= slog.LevelInfo {
		l.captureMessage("INFO", msg, args...)
	}
}

// Warn captures warn messages.
func (l *MockLogger) Warn(msg string, args ...any) {
	if l.Level <= slog.LevelWarn {
		l.captureMessage("WARN", msg, args...)
	}
}

// Error captures error messages.
func (l *MockLogger) Error(msg string, args ...any) {
	if l.Level <= slog.LevelError {
		l.captureMessage("ERROR", msg, args...)
	}
}

// With returns a child logger whose messages land in the same Messages slice.
func (l *MockLogger) With(args ...any) log.Logger {
	return &MockLogger{
		Level:  l.Level,
		attrs:  append(append([]any{}, l.attrs...), args...),
		parent: l.root(),
	}
}

func (l *MockLogger) root() *MockLogger {
	if l.parent != nil {
		return l.parent
	}
	return l
}

func (l *MockLogger) captureMessage(level, msg string, args ...any) {
	buf := &bytes.Buffer{}
	buf.WriteString(level)
	buf.WriteString(": ")
	buf.WriteString(msg)
	all := append(append([]any{}, l.attrs...), args...)
	for i := 0; i+1 < len(all); i += 2 {
		buf.WriteString(" ")
		buf.WriteString(fmt.Sprintf("%v", all[i]))
		buf.WriteString("=")
		buf.WriteString(fmt.Sprintf("%v", all[i+1]))
	}
	root := l.root()
	root.Messages = append(root.Messages, buf.String())
}

// HasMessage checks if any captured message contains the given substring.
func (l *MockLogger) HasMessage(substring string) bool {
	for _, msg := range l.root().Messages {
		if strings.Contains(msg, substring) {
			return true
		}
	}
	return false
}
