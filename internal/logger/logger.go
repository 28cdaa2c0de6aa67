package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu           sync.RWMutex
	globalLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// InitLogging configures the global logger to write to stdout and, when
// logFilePath is set, to that file as well. The returned closer releases
// the file.
func InitLogging(level, logFilePath string) (io.Closer, error) {
	writers := []io.Writer{os.Stdout}
	var closer io.Closer = nopCloser{}
	if logFilePath != "" {
		file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o664)
		if err != nil {
			return closer, err
		}
		writers = append(writers, file)
		closer = file
	}
	SetOutput(zerolog.MultiLevelWriter(writers...), level)
	return closer, nil
}

// SetOutput replaces the global logger. Tests point it at a buffer.
func SetOutput(w io.Writer, level string) {
	l := zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(level))
	mu.Lock()
	globalLogger = l
	mu.Unlock()
	log.Logger = l
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Global returns the process-wide logger.
func Global() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := globalLogger
	return &l
}

// WithFields returns ctx carrying a logger with fields attached.
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	l := getLogger(ctx).With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// getLogger extracts the logger from ctx, falling back to the global logger.
func getLogger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	// zerolog.Ctx returns a disabled logger if none is in context
	if l.GetLevel() == zerolog.Disabled {
		return Global()
	}
	return l
}

// FromContext is getLogger for callers building their own events.
func FromContext(ctx context.Context) *zerolog.Logger {
	return getLogger(ctx)
}

func DebugLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Debug().Msgf(msg, args...)
}

func InfoLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Info().Msgf(msg, args...)
}

func WarnLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Warn().Msgf(msg, args...)
}

// ErrorLog logs at error level with err attached when it is non-nil.
func ErrorLog(ctx context.Context, err error, msg string, args ...interface{}) {
	ev := getLogger(ctx).Error()
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msgf(msg, args...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
