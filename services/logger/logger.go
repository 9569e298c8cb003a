package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LogrusLogger implements Logger on top of a logrus entry.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger builds a logger writing to stdout. JSON output is meant for production.
func NewLogrusLogger(level Level, jsonOutput bool) *LogrusLogger {
	return newLogrusLogger(os.Stdout, level, jsonOutput)
}

func newLogrusLogger(out io.Writer, level Level, jsonOutput bool) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(toLogrusLevel(level))
	if jsonOutput {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// With returns a child logger carrying an extra field.
func (l *LogrusLogger) With(key string, value interface{}) *LogrusLogger {
	return &LogrusLogger{entry: l.entry.WithField(key, value)}
}

func (l *LogrusLogger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *LogrusLogger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *LogrusLogger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

func (l *LogrusLogger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

func toLogrusLevel(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// ParseLevel reads LOG_LEVEL style strings, defaulting to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// NewNopLogger discards everything. Used by tests.
func NewNopLogger() *LogrusLogger {
	return newLogrusLogger(io.Discard, ErrorLevel, false)
}

var defaultLogger Logger = NewLogrusLogger(InfoLevel, false)

// Default trả về logger dùng chung cho các package không nhận logger qua options
func Default() Logger {
	return defaultLogger
}

// SetDefault thay logger dùng chung, gọi một lần lúc khởi động
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger = l
	}
}
