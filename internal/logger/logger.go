// Package logger is the process-wide leveled logger used by every gdc component.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a logging threshold
type Level int

const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
)

var levelNames = map[Level]string{
	DEBUG:   "DEBUG",
	INFO:    "INFO",
	WARNING: "WARNING",
	ERROR:   "ERROR",
}

// String returns the upper-case level name
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Logger writes prefixed lines for messages at or above its level
type Logger struct {
	mu    sync.RWMutex
	level Level
	out   *log.Logger
}

var (
	globalMu     sync.Mutex
	globalLogger *Logger
)

// New creates a logger writing to output, stdout when nil
func New(level Level, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}
	return &Logger{
		level: level,
		out:   log.New(output, "", log.LstdFlags),
	}
}

// Init replaces the global logger
func Init(level Level, output io.Writer) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = New(level, output)
}

// ParseLevel parses a level name. Unknown names yield INFO and an error.
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARNING", "WARN":
		return WARNING, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", level)
	}
}

// ParseLogLevel is ParseLevel without the error
func ParseLogLevel(level string) Level {
	l, _ := ParseLevel(level)
	return l
}

// Get returns the global logger, creating an INFO logger on stdout on first use
func Get() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = New(INFO, os.Stdout)
	}
	return globalLogger
}

// Level returns the current threshold
func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetLevel changes the threshold
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// SetOutput redirects the logger
func (l *Logger) SetOutput(w io.Writer) {
	l.out.SetOutput(w)
}

// Enabled reports whether messages at level are written
func (l *Logger) Enabled(level Level) bool {
	return level >= l.Level()
}

func (l *Logger) logf(level Level, format string, v ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.out.Printf("[%s] %s", level, fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(format string, v ...interface{})   { l.logf(DEBUG, format, v...) }
func (l *Logger) Info(format string, v ...interface{})    { l.logf(INFO, format, v...) }
func (l *Logger) Warning(format string, v ...interface{}) { l.logf(WARNING, format, v...) }
func (l *Logger) Error(format string, v ...interface{})   { l.logf(ERROR, format, v...) }

// Fatal logs at ERROR regardless of level and exits
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.out.Printf("[%s] %s", ERROR, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Writer returns an io.Writer that logs each write as one INFO line.
// Used to route gin's request log through the same output.
func (l *Logger) Writer() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		l.Info("%s", strings.TrimRight(string(p), "\n"))
		return len(p), nil
	})
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func Debug(format string, v ...interface{})   { Get().Debug(format, v...) }
func Info(format string, v ...interface{})    { Get().Info(format, v...) }
func Warning(format string, v ...interface{}) { Get().Warning(format, v...) }
func Error(format string, v ...interface{})   { Get().Error(format, v...) }
func Fatal(format string, v ...interface{})   { Get().Fatal(format, v...) }

// SetLevel changes the global threshold
func SetLevel(level Level) { Get().SetLevel(level) }

// SetOutput redirects the global logger
func SetOutput(w io.Writer) { Get().SetOutput(w) }

// IsDebugEnabled reports whether the global logger writes DEBUG lines
func IsDebugEnabled() bool { return Get().Enabled(DEBUG) }
