package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level, defaulting to INFO
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand for creating a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// sensitiveKeys are never written with their value
var sensitiveKeys = []string{"token", "password", "senha", "authorization", "cookie", "secret"}

func redact(f Field) Field {
	k := strings.ToLower(f.Key)
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return Field{Key: f.Key, Value: "[redacted]"}
		}
	}
	return f
}

// Config holds logger configuration
type Config struct {
	Level      Level     // Minimum log level
	FilePath   string    // Path to log file, empty disables file output
	MaxSize    int64     // Max size in bytes before rotation
	MaxAge     int       // Max age in days before rotation
	MaxBackups int       // Max number of rotated files kept
	Console    bool      // Also write to stderr
	Output     io.Writer // Extra writer, mostly for tests
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".medshare", "logs", "medshare.log")
	}

	return Config{
		Level:      INFO,
		FilePath:   logPath,
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxAge:     7,
		MaxBackups: 5,
		Console:    false, // keeps the TUI clean
	}
}

// Logger writes leveled, structured lines to a rotating file and optional extra outputs
type Logger struct {
	config Config
	out    *output
	fields []Field
}

// output is shared between a logger and the children made by WithFields
type output struct {
	mu      sync.Mutex
	file    *os.File
	writers []io.Writer
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Init initializes the global logger. Only the first call has an effect.
func Init(config Config) error {
	var err error
	once.Do(func() {
		globalLogger, err = New(config)
	})
	return err
}

// New creates a new logger instance
func New(config Config) (*Logger, error) {
	l := &Logger{
		config: config,
		out:    &output{},
	}

	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := l.openFile(); err != nil {
			return nil, err
		}
		if err := l.rotateIfNeeded(); err != nil {
			return nil, err
		}
	}

	l.resetWriters()
	return l, nil
}

func (l *Logger) openFile() error {
	file, err := os.OpenFile(l.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.out.file = file
	return nil
}

func (l *Logger) resetWriters() {
	l.out.writers = l.out.writers[:0]
	if l.out.file != nil {
		l.out.writers = append(l.out.writers, l.out.file)
	}
	if l.config.Console {
		l.out.writers = append(l.out.writers, os.Stderr)
	}
	if l.config.Output != nil {
		l.out.writers = append(l.out.writers, l.config.Output)
	}
}

// rotateIfNeeded rotates the log file on size or age. Caller holds out.mu or is in New.
func (l *Logger) rotateIfNeeded() error {
	if l.out.file == nil {
		return nil
	}

	info, err := l.out.file.Stat()
	if err != nil {
		return err
	}

	tooBig := l.config.MaxSize > 0 && info.Size() >= l.config.MaxSize
	tooOld := l.config.MaxAge > 0 && info.Size() > 0 &&
		time.Since(info.ModTime()) > time.Duration(l.config.MaxAge)*24*time.Hour
	if !tooBig && !tooOld {
		return nil
	}
	return l.rotate()
}

func (l *Logger) rotate() error {
	l.out.file.Close()

	for i := l.config.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", l.config.FilePath, i), fmt.Sprintf("%s.%d", l.config.FilePath, i+1))
	}
	if _, err := os.Stat(l.config.FilePath); err == nil {
		if err := os.Rename(l.config.FilePath, l.config.FilePath+".1"); err != nil {
			return err
		}
	}

	if err := l.openFile(); err != nil {
		return err
	}
	l.resetWriters()
	return nil
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if level < l.config.Level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	caller := "???"
	if ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s: %s", time.Now().Format("2006-01-02 15:04:05.000"), level, caller, msg)
	if n := len(l.fields) + len(fields); n > 0 {
		b.WriteString(" |")
		for _, set := range [][]Field{l.fields, fields} {
			for _, f := range set {
				f = redact(f)
				fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
			}
		}
	}
	b.WriteByte('\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	l.rotateIfNeeded()
	for _, w := range l.out.writers {
		io.WriteString(w, b.String())
	}
}

// WithFields creates a child logger with preset fields
func (l *Logger) WithFields(fields ...Field) *Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{
		config: l.config,
		out:    l.out,
		fields: merged,
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Field) {
	l.log(DEBUG, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Field) {
	l.log(INFO, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log(WARN, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...Field) {
	l.log(ERROR, msg, fields)
}

// Close closes the log file
func (l *Logger) Close() error {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if l.out.file != nil {
		return l.out.file.Close()
	}
	return nil
}

// Global logger functions

// Debug logs a debug message using the global logger
func Debug(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(DEBUG, msg, fields)
	}
}

// Info logs an info message using the global logger
func Info(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(INFO, msg, fields)
	}
}

// Warn logs a warning message using the global logger
func Warn(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(WARN, msg, fields)
	}
}

// Error logs an error message using the global logger
func Error(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(ERROR, msg, fields)
	}
}

// WithFields creates a child of the global logger. Before Init it returns a discarding logger.
func WithFields(fields ...Field) *Logger {
	if globalLogger != nil {
		return globalLogger.WithFields(fields...)
	}
	return Discard()
}

// Discard returns a logger that writes nothing
func Discard() *Logger {
	return &Logger{config: Config{Level: ERROR + 1}, out: &output{}}
}

// Close closes the global logger
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

// GetConfig returns the current logger configuration
func GetConfig() Config {
	if globalLogger != nil {
		return globalLogger.config
	}
	return DefaultConfig()
}
