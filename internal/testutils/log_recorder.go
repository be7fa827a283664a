package testutils

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// LogEntry is a captured log record with its attributes flattened.
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// logStore is shared between a LogRecorder and the handlers derived from it.
type logStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogRecorder captures log records for test assertions. Handlers returned by
// WithAttrs and WithGroup write to the same store.
type LogRecorder struct {
	store  *logStore
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

var _ slog.Handler = (*LogRecorder)(nil)

// NewLogRecorder returns a recorder that accepts records at level or above.
func NewLogRecorder(level slog.Leveler) *LogRecorder {
	if level == nil {
		level = slog.LevelDebug
	}
	return &LogRecorder{store: &logStore{}, level: level}
}

// NewLogger returns a logger writing to a fresh recorder at debug level.
func NewLogger() (*slog.Logger, *LogRecorder) {
	rec := NewLogRecorder(slog.LevelDebug)
	return slog.New(rec), rec
}

// Enabled implements slog.Handler.
func (h *LogRecorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *LogRecorder) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		addAttr(attrs, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(attrs, h.prefix, a)
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.entries = append(h.store.entries, LogEntry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// WithAttrs implements slog.Handler.
func (h *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup implements slog.Handler.
func (h *LogRecorder) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// Entries returns a copy of the captured entries.
func (h *LogRecorder) Entries() []LogEntry {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]LogEntry, len(h.store.entries))
	copy(out, h.store.entries)
	return out
}

// Find returns the first entry with the given message.
func (h *LogRecorder) Find(message string) (LogEntry, bool) {
	for _, e := range h.Entries() {
		if e.Message == message {
			return e, true
		}
	}
	return LogEntry{}, false
}

// Contains reports whether s appears in any message or attribute value.
func (h *LogRecorder) Contains(s string) bool {
	for _, e := range h.Entries() {
		if strings.Contains(e.Message, s) {
			return true
		}
		for _, v := range e.Attrs {
			if str, ok := v.(string); ok && strings.Contains(str, s) {
				return true
			}
		}
	}
	return false
}

// Clear drops all captured entries.
func (h *LogRecorder) Clear() {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.entries = nil
}

func addAttr(dst map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range v.Group() {
			addAttr(dst, groupPrefix, ga)
		}
		return
	}
	if v.Kind() == slog.KindString {
		dst[prefix+a.Key] = v.String()
		return
	}
	dst[prefix+a.Key] = v.Any()
}
