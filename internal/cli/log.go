package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// newLogger creates the command logger. Timestamps keep long renders
// attributable; level filtering is wired to --verbose.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
