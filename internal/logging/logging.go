package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON logger writing to w. A nil writer means stdout, which is
// what the Lambda runtime forwards to CloudWatch Logs.
func New(level slog.Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
