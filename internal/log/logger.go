// Package log is the application logger. It wraps logrus with the small
// field-oriented API used throughout mapgallery.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"mapgallery/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.RWMutex
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F creates a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, structured log lines.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

type options struct {
	out  io.Writer
	json bool
	file string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput directs log lines to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile additionally appends log lines to the file at path.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// NewLogger creates a logger. Without options it writes text to stdout.
func NewLogger(opts ...Option) *Logger {
	o := &options{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)

	l := &Logger{}
	out := o.out
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", o.file, err)
		} else {
			l.file = f
			out = io.MultiWriter(o.out, f)
		}
	}
	base.SetOutput(out)

	fieldMap := logrus.FieldMap{
		logrus.FieldKeyMsg:  "message",
		logrus.FieldKeyTime: "timestamp",
	}
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap:        fieldMap,
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap:        fieldMap,
		})
	}

	l.entry = logrus.NewEntry(base)
	return l
}

// Configure replaces the package logger used by the top-level functions
// and closes the log file of the logger it replaces.
func Configure(opts ...Option) {
	l := NewLogger(opts...)
	mu.Lock()
	prev := logger
	logger = l
	mu.Unlock()
	prev.Close()
}

// SetDebug enables or disables debug output for every logger.
func SetDebug(debug bool) {
	mu.Lock()
	isDebug = debug
	mu.Unlock()
}

func debugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return isDebug
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Close releases the log file opened by WithFile, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// With returns a logger that adds fields to every line.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithContext attaches ctx to the entry. Nil contexts are allowed.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), file: l.file}
}

// WithError adds the error and, for application errors, its kind and subject.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l.With(F("error", "<nil>"))
	}
	fields := []Field{F("error", err.Error()), F("error_kind", errors.KindOf(err).String())}

	var fe *errors.FileError
	if errors.As(err, &fe) && fe.Path() != "" {
		fields = append(fields, F("path", fe.Path()))
	}
	var ce *errors.ConfigError
	if errors.As(err, &ce) && ce.Param() != "" {
		fields = append(fields, F("param", ce.Param()))
	}
	var de *errors.DownloadError
	if errors.As(err, &de) && de.URL() != "" {
		fields = append(fields, F("url", de.URL()))
	}
	return l.With(fields...)
}

// caller depth: callerField <- log <- exported method/function <- user code
const callerDepth = 3

func callerField() string {
	_, file, line, ok := runtime.Caller(callerDepth)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func (l *Logger) log(level logrus.Level, msg string) {
	if level == logrus.DebugLevel && !debugEnabled() {
		return
	}
	l.entry.WithField("caller", callerField()).Log(level, msg)
}

// Info logs at info level
func (l *Logger) Info(msg string) { l.log(logrus.InfoLevel, msg) }

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

// Warn logs at warning level
func (l *Logger) Warn(msg string) { l.log(logrus.WarnLevel, msg) }

// Warnf logs a formatted message at warning level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

// Error logs at error level
func (l *Logger) Error(msg string) { l.log(logrus.ErrorLevel, msg) }

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// Debug logs at debug level when debug output is enabled
func (l *Logger) Debug(msg string) { l.log(logrus.DebugLevel, msg) }

// Debugf logs a formatted message when debug output is enabled
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return current().With(fields...)
}

// LogWithError returns the package logger with error fields attached.
func LogWithError(err error) *Logger {
	return current().WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	current().WithError(err).log(logrus.ErrorLevel, msg)
}

func Info(msg string) { current().log(logrus.InfoLevel, msg) }

func Infof(format string, args ...interface{}) {
	current().log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func Warn(msg string) { current().log(logrus.WarnLevel, msg) }

func Warnf(format string, args ...interface{}) {
	current().log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func Error(msg string) { current().log(logrus.ErrorLevel, msg) }

func Errorf(format string, args ...interface{}) {
	current().log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

func Debug(msg string) { current().log(logrus.DebugLevel, msg) }

func Debugf(format string, args ...interface{}) {
	current().log(logrus.DebugLevel, fmt.Sprintf(format, args...))
}
