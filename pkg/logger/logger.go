// Package logger provides a simple, clean logging interface.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Constants for logging operations.
const (
	callerSkipFrames = 2 // Skip frames: getCaller -> logging method -> actual caller
)

// Output formats accepted by InitWithOptions.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger defines the logging interface.
type Logger interface {
	// Context-aware variants
	Info(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Fatal(ctx context.Context, msg string, fields ...Field)

	Named(name string) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// Field constructors.
func String(key, val string) Field          { return Field{Key: key, Value: val} }
func Int(key string, val int) Field         { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field { return Field{Key: key, Value: val} }
func Bool(key string, val bool) Field       { return Field{Key: key, Value: val} }
func Strings(key string, val []string) Field { return Field{Key: key, Value: val} }
func Any(key string, val interface{}) Field { return Field{Key: key, Value: val} }
func Error(err error) Field                 { return Field{Key: "error", Value: err} }

// Options configures the global logger.
type Options struct {
	// Format is "text" (console writer) or "json".
	Format string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// zerologLogger implements Logger using zerolog.
type zerologLogger struct {
	Logger zerolog.Logger
}

func (l *zerologLogger) Named(name string) Logger {
	return &zerologLogger{Logger: l.Logger.With().Str("logger", name).Logger()}
}

func (l *zerologLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, l.Logger.Info(), getCaller(), msg, fields)
}

func (l *zerologLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, l.Logger.Error(), getCaller(), msg, fields)
}

func (l *zerologLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, l.Logger.Debug(), getCaller(), msg, fields)
}

func (l *zerologLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.emit(ctx, l.Logger.Warn(), getCaller(), msg, fields)
}

func (l *zerologLogger) Fatal(ctx context.Context, msg string, fields ...Field) {
	// WithLevel does not exit on its own; keep control of the exit here.
	l.emit(ctx, l.Logger.WithLevel(zerolog.FatalLevel), getCaller(), msg, fields)
	os.Exit(1)
}

func (l *zerologLogger) emit(ctx context.Context, ev *zerolog.Event, caller, msg string, fields []Field) {
	if ev == nil {
		return
	}
	for _, f := range fields {
		ev = appendField(ev, f)
	}
	ev.Ctx(ctx).Str("source", caller).Msg(msg)
}

// appendField converts our Field type to a typed zerolog field.
func appendField(ev *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case error:
		return ev.AnErr(f.Key, v)
	case string:
		return ev.Str(f.Key, v)
	case []string:
		return ev.Strs(f.Key, v)
	case int:
		return ev.Int(f.Key, v)
	case float64:
		return ev.Float64(f.Key, v)
	case bool:
		return ev.Bool(f.Key, v)
	case time.Duration:
		return ev.Dur(f.Key, v)
	default:
		return ev.Interface(f.Key, v)
	}
}

var (
	global Logger
	mu     sync.RWMutex
)

// Init initializes the global logger with text output on stdout.
func Init() error {
	return InitWithOptions(Options{Format: FormatText})
}

// InitWithOptions initializes the global logger with the given format and output.
func InitWithOptions(opts Options) error {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var w io.Writer
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatText, "console":
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	case FormatJSON:
		w = out
	default:
		return fmt.Errorf("unknown log format: %s", opts.Format)
	}

	// Default to info; can be changed with SetLevel*/SetLevelString.
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimeFieldFormat = time.RFC3339

	mu.Lock()
	global = &zerologLogger{Logger: zerolog.New(w).With().Timestamp().Logger()}
	mu.Unlock()
	return nil
}

// getCaller returns the caller location in format relative/path/file.go:line (IDE-friendly).
func getCaller() string {
	_, file, line, ok := runtime.Caller(callerSkipFrames)
	if !ok {
		return "unknown:0"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	relPath, err := filepath.Rel(cwd, file)
	if err != nil {
		return fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	return fmt.Sprintf("%s:%d", relPath, line)
}

// Get returns the global logger.
func Get() Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		// The logger should be explicitly initialized by the application
		panic("logger not initialized. Call logger.Init() first")
	}
	return global
}

// Named creates a named logger.
func Named(name string) Logger {
	return Get().Named(name)
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop() Logger {
	return &zerologLogger{Logger: zerolog.Nop()}
}

// Sync flushes buffered log entries.
func Sync() error {
	// zerolog writes synchronously; nothing to flush
	return nil
}

// SetLevel updates the current logging level.
func SetLevel(level zerolog.Level) { zerolog.SetGlobalLevel(level) }

// SetLevelString parses and sets the logging level.
// Accepts: debug, info, warn/warning, error (case-insensitive).
func SetLevelString(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		SetLevel(zerolog.DebugLevel)
	case "", "info":
		SetLevel(zerolog.InfoLevel)
	case "warn", "warning":
		SetLevel(zerolog.WarnLevel)
	case "error":
		SetLevel(zerolog.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	return nil
}
