package logging

import (
	"io"
	"log/slog"
	"os"
)

// SetupJSON sets slog's default logger to use JSON output on stdout at the given level.
func SetupJSON(level slog.Level, attrs ...slog.Attr) {
	slog.SetDefault(NewJSON(os.Stdout, level, attrs...))
}

// NewJSON returns a JSON logger writing to w. attrs are attached to every record,
// e.g. the service name.
func NewJSON(w io.Writer, level slog.Level, attrs ...slog.Attr) *slog.Logger {
	var h slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	if len(attrs) > 0 {
		h = h.WithAttrs(attrs)
	}

	return slog.New(h)
}
