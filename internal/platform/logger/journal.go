package logger

import (
	"log/slog"
	"strings"

	slogjournal "github.com/systemd/slog-journal"
)

// newJournalHandler returns a handler writing to the systemd journal.
// Journal field names must be upper-case ASCII letters, digits and underscores.
func newJournalHandler(level slog.Leveler) (slog.Handler, error) {
	return slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
		ReplaceGroup: func(key string) string {
			return journalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = journalKey(a.Key)
			return a
		},
	})
}

func journalKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		default:
			return '_'
		}
	}, key)
}
