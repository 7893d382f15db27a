package mocklogger

import (
	"context"
	"log/slog"
	"sync"
)

// MockHandler records every message it handles so tests can assert on what
// was logged.
type MockHandler struct {
	mu             *sync.Mutex
	loggedMessages *[]string
	loggedLevels   *[]slog.Level
}

// Enabled implements slog.Handler.
func (h *MockHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle implements slog.Handler.
func (h *MockHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.loggedMessages = append(*h.loggedMessages, r.Message)
	*h.loggedLevels = append(*h.loggedLevels, r.Level)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *MockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

// WithGroup implements slog.Handler.
func (h *MockHandler) WithGroup(name string) slog.Handler {
	return h
}

// Messages returns a copy of the recorded messages.
func (h *MockHandler) Messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), *h.loggedMessages...)
}

// Levels returns a copy of the recorded levels.
func (h *MockHandler) Levels() []slog.Level {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]slog.Level(nil), *h.loggedLevels...)
}

// NewMockHandler creates an empty recording handler.
func NewMockHandler() *MockHandler {
	return &MockHandler{
		mu:             &sync.Mutex{},
		loggedMessages: &[]string{},
		loggedLevels:   &[]slog.Level{},
	}
}

// NewMockLogger creates a new logger with the mock handler
func NewMockLogger() *slog.Logger {
	return slog.New(NewMockHandler())
}
