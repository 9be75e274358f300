package helper

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogHandlerSpy is a slog.Handler implementation that captures log records for testing.
type LogHandlerSpy struct {
	records     []slog.Record
	mu          sync.Mutex
	logToStdout bool
}

// NewLogHandlerSpy creates a new LogHandlerSpy
// Switchable to log to stdout, which can be useful for debugging tests by seeing the actual log output.
func NewLogHandlerSpy(logToStdOut bool) *LogHandlerSpy {
	return &LogHandlerSpy{
		records:     make([]slog.Record, 0),
		logToStdout: logToStdOut,
	}
}

// Handle implements slog.Handler interface.
func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)

	// Optionally also log to stdout for debugging
	if s.logToStdout {
		jsonHandler := slog.NewJSONHandler(os.Stdout, nil)
		_ = jsonHandler.Handle(ctx, record)
	}

	return nil
}

// Enabled implements slog.Handler interface.
func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true // Always enabled for testing
}

// WithAttrs implements slog.Handler interface.
func (s *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	// For testing, we don't need to implement this
	return s
}

// WithGroup implements slog.Handler interface.
func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	// For testing, we don't need to implement this
	return s
}

// GetRecordCount returns the number of captured log records.
func (s *LogHandlerSpy) GetRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Reset clears all captured log records.
func (s *LogHandlerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = s.records[:0]
}

// HasDebugLog checks if there's a debug-level log record containing the specified message.
func (s *LogHandlerSpy) HasDebugLog(message string) bool {
	return s.hasLog(slog.LevelDebug, message)
}

// HasInfoLog checks if there's an info-level log record containing the specified message.
func (s *LogHandlerSpy) HasInfoLog(message string) bool {
	return s.hasLog(slog.LevelInfo, message)
}

// HasWarnLog checks if there's a warn-level log record containing the specified message.
func (s *LogHandlerSpy) HasWarnLog(message string) bool {
	return s.hasLog(slog.LevelWarn, message)
}

// HasErrorLog checks if there's an error-level log record containing the specified message.
func (s *LogHandlerSpy) HasErrorLog(message string) bool {
	return s.hasLog(slog.LevelError, message)
}

func (s *LogHandlerSpy) hasLog(level slog.Level, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			return true
		}
	}

	return false
}

// SpyLogRecordMatcher provides a fluent interface for checking log record attributes.
type SpyLogRecordMatcher struct {
	record *slog.Record
	found  bool
}

// HasDebugLogWithMessage starts a fluent chain to check a debug-level log record.
func (s *LogHandlerSpy) HasDebugLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.matcherFor(slog.LevelDebug, message)
}

// HasInfoLogWithMessage starts a fluent chain to check an info-level log record.
func (s *LogHandlerSpy) HasInfoLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.matcherFor(slog.LevelInfo, message)
}

func (s *LogHandlerSpy) matcherFor(level slog.Level, message string) *SpyLogRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			return &SpyLogRecordMatcher{record: &record, found: true}
		}
	}

	return &SpyLogRecordMatcher{found: false}
}

// WithDurationMS checks if the log record has a duration_ms attribute with a non-negative value.
func (m *SpyLogRecordMatcher) WithDurationMS() *SpyLogRecordMatcher {
	if !m.found {
		return m
	}

	hasDurationMS := false
	m.record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "duration_ms" {
			// Handle both Int64 and Float64 values for duration
			switch attr.Value.Kind() {
			case slog.KindInt64:
				if attr.Value.Int64() >= 0 {
					hasDurationMS = true
					return false // Stop iteration
				}

			case slog.KindFloat64:
				if attr.Value.Float64() >= 0 {
					hasDurationMS = true
					return false // Stop iteration
				}

			default:
				// Other types are not supported for duration
			}
		}

		return true // Continue iteration
	})

	if !hasDurationMS {
		m.found = false
	}

	return m
}

// WithOperation checks if the log record has an operation attribute with the given value.
func (m *SpyLogRecordMatcher) WithOperation(operation string) *SpyLogRecordMatcher {
	if !m.found {
		return m
	}

	hasOperation := false
	m.record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "operation" && attr.Value.String() == operation {
			hasOperation = true
			return false // Stop iteration
		}

		return true // Continue iteration
	})

	if !hasOperation {
		m.found = false
	}

	return m
}

// WithAuditContaining checks if the log record has an audit attribute whose
// JSON payload contains the given substring.
func (m *SpyLogRecordMatcher) WithAuditContaining(substring string) *SpyLogRecordMatcher {
	if !m.found {
		return m
	}

	hasAudit := false
	m.record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "audit" && strings.Contains(attr.Value.String(), substring) {
			hasAudit = true
			return false // Stop iteration
		}

		return true // Continue iteration
	})

	if !hasAudit {
		m.found = false
	}

	return m
}

// Assert returns true if all conditions in the fluent chain were met.
func (m *SpyLogRecordMatcher) Assert() bool {
	return m.found
}
