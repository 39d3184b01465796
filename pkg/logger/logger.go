package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
	WarnLogger  *log.Logger

	level atomic.Int32
)

type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func init() {
	setWriters(os.Stdout, os.Stderr)
	level.Store(int32(LevelInfo))
}

// Setup reconfigures the package loggers. When opts.File is set, every level
// is also written to a size-rotated file.
func Setup(opts Options) io.Closer {
	SetLevel(ParseLevel(opts.Level))

	if opts.File == "" {
		setWriters(os.Stdout, os.Stderr)
		return io.NopCloser(nil)
	}

	rotating := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	setWriters(io.MultiWriter(os.Stdout, rotating), io.MultiWriter(os.Stderr, rotating))
	return rotating
}

func setWriters(out, errOut io.Writer) {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	InfoLogger = log.New(out, "INFO: ", flags)
	ErrorLogger = log.New(errOut, "ERROR: ", flags)
	DebugLogger = log.New(out, "DEBUG: ", flags)
	WarnLogger = log.New(out, "WARN: ", flags)
}

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func SetLevel(l Level) {
	level.Store(int32(l))
}

func enabled(l Level) bool {
	return Level(level.Load()) <= l
}

func Info(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		InfoLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Error(format string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		DebugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		WarnLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

type requestIDKey struct{}

// ContextWithRequestID returns ctx carrying the request id printed by the
// *Context loggers.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithContext formats a message prefixed with the request id carried by ctx.
func WithContext(ctx context.Context, format string, v ...interface{}) string {
	msg := fmt.Sprintf(format, v...)
	if id := RequestID(ctx); id != "" {
		return "[req " + id + "] " + msg
	}
	return msg
}

func InfoContext(ctx context.Context, format string, v ...interface{}) {
	if enabled(LevelInfo) {
		InfoLogger.Output(2, WithContext(ctx, format, v...))
	}
}

func WarnContext(ctx context.Context, format string, v ...interface{}) {
	if enabled(LevelWarn) {
		WarnLogger.Output(2, WithContext(ctx, format, v...))
	}
}

func ErrorContext(ctx context.Context, format string, v ...interface{}) {
	ErrorLogger.Output(2, WithContext(ctx, format, v...))
}

// LogPhotoError records a failed step of a photo operation.
func LogPhotoError(ctx context.Context, photoID, stage string, err error) {
	ErrorLogger.Output(2, WithContext(ctx, "Photo operation failed: stage=%s, photoID=%s, error=%v", stage, photoID, err))
}
