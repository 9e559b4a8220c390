package internal

import (
	"log"
	"os"
	"strings"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

var levelNames = map[LogLevel]string{
	LogLevelError: "ERROR",
	LogLevelWarn:  "WARN",
	LogLevelInfo:  "INFO",
	LogLevelDebug: "DEBUG",
	LogLevelTrace: "TRACE",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "INFO"
}

// ParseLogLevel maps ERROR, WARN, INFO, DEBUG or TRACE (any case) to a level.
// Unknown names fall back to INFO.
func ParseLogLevel(s string) LogLevel {
	name := strings.ToUpper(strings.TrimSpace(s))
	for level, n := range levelNames {
		if n == name {
			return level
		}
	}
	return LogLevelInfo
}

// Logger provides leveled logging
type Logger struct {
	level  LogLevel
	output *log.Logger
}

// NewLogger creates a new logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level, output: log.Default()}
}

// NewDefaultLogger creates a logger based on LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	return NewLogger(ParseLogLevel(os.Getenv("LOG_LEVEL")))
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LogLevelError, format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogLevelWarn, format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LogLevelInfo, format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogLevelDebug, format, args...)
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	l.logf(LogLevelTrace, format, args...)
}

// Printf logs at INFO so the logger can back chi's request logger
func (l *Logger) Printf(format string, args ...interface{}) {
	l.logf(LogLevelInfo, format, args...)
}

func (l *Logger) logf(level LogLevel, format string, args ...interface{}) {
	if l.level >= level {
		l.output.Printf("["+level.String()+"] "+format, args...)
	}
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Enabled reports whether messages at level are emitted
func (l *Logger) Enabled(level LogLevel) bool {
	return l.level >= level
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()

// SetDefaultLevel reconfigures the global logger once config is loaded
func SetDefaultLevel(level LogLevel) {
	DefaultLogger.level = level
}
