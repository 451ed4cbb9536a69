package log

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// AttrOption adds a field to a logger context.
type AttrOption func(l zerolog.Context) zerolog.Context

func Scope(s string) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("s", s)
	}
}

// Container tags the log with the container kind (queue, stack).
func Container(kind string) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("container", kind)
	}
}

func Operation(op string) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("op", op)
	}
}

func Elapsed(d time.Duration) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Dur("elapsed", d)
	}
}

// Logger is a thin wrapper around zerolog.Logger with the module's
// message conventions.
type Logger struct {
	zl *zerolog.Logger
}

// New returns the fallback logger tagged with scope.
func New(scope string) *Logger {
	zl := zerolog.Ctx(context.Background()).With().Str("s", scope).Logger()
	return &Logger{zl: &zl}
}

// Ctx returns the logger stored in ctx, or the fallback logger.
func Ctx(ctx context.Context) *Logger {
	return &Logger{zl: zerolog.Ctx(ctx)}
}

// WithAttrs returns a copy of ctx carrying a logger with extra fields.
func WithAttrs(ctx context.Context, opts ...AttrOption) context.Context {
	return Ctx(ctx).With(opts...).WithContext(ctx)
}

func (l *Logger) With(opts ...AttrOption) *Logger {
	c := l.zl.With()
	for _, opt := range opts {
		c = opt(c)
	}

	zl := c.Logger()
	return &Logger{zl: &zl}
}

func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.zl.WithContext(ctx)
}

// Unwrap returns the underlying zerolog logger.
func (l *Logger) Unwrap() *zerolog.Logger {
	return l.zl
}

func (l *Logger) Trace(msg string) {
	l.zl.Trace().Msg(msg)
}

func (l *Logger) Tracef(msg string, args ...any) {
	l.zl.Trace().Msgf(msg, args...)
}

func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func (l *Logger) Debugf(msg string, args ...any) {
	l.zl.Debug().Msgf(msg, args...)
}

func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *Logger) Infof(msg string, args ...any) {
	l.zl.Info().Msgf(msg, args...)
}

func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.zl.Warn().Msgf(msg, args...)
}

func (l *Logger) Error(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

func (l *Logger) Errorf(err error, msg string, args ...any) {
	l.zl.Error().Err(err).Msgf(msg, args...)
}

// NewLogger builds a logger writing to w, as JSON or as console output.
func NewLogger(w io.Writer, level zerolog.Level, json, noColor bool) *zerolog.Logger {
	if !json {
		w = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = w
			cw.NoColor = noColor
			cw.TimeFormat = time.DateTime
		})
	}

	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &l
}

// InitGlobals creates the stderr logger and installs it as the fallback
// for contexts without a logger.
func InitGlobals(level zerolog.Level, json, noColor bool) *zerolog.Logger {
	l := NewLogger(os.Stderr, level, json, noColor)
	zerolog.DefaultContextLogger = l
	return l
}
