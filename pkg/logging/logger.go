package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes debug output for one CLI invocation to a run-specific
// file in ~/.agent-browser/logs/. Command output stays on stdout; the
// log file captures what happened behind it.
//
// All log methods (Debugf, Infof, Warnf, Errorf) write unconditionally.
// Callers that want logging off use Nop.
type Logger struct {
	runID     string
	file      *os.File
	logger    *log.Logger
	mu        sync.Mutex
	path      string
	closeOnce sync.Once
}

var (
	// logDir is the directory where log files are stored
	logDir string

	// initOnce ensures directory initialization happens once
	initOnce sync.Once

	// initErr stores any error from directory initialization
	initErr error
)

// initLogDirectory ensures the log directory exists
func initLogDirectory() error {
	initOnce.Do(func() {
		if logDir != "" {
			initErr = os.MkdirAll(logDir, 0750)
			return
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}
		logDir = filepath.Join(homeDir, ".agent-browser", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
		}
	})
	return initErr
}

// New creates a logger for this invocation, writing to
// ~/.agent-browser/logs/<run-id>.log.
//
// If the log directory cannot be created or the log file cannot be
// opened, it returns a fallback logger that writes to stderr along
// with the error. Callers can check the error to detect fallback mode.
func New() (*Logger, error) {
	runID := uuid.New().String()

	if err := initLogDirectory(); err != nil {
		return newFallbackLogger(runID, err), err
	}

	path := filepath.Join(logDir, runID+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return newFallbackLogger(runID, fmt.Errorf("failed to open log file: %w", err)), err
	}

	return &Logger{
		runID:  runID,
		file:   file,
		logger: log.New(file, "", 0), // We format timestamps ourselves
		path:   path,
	}, nil
}

// Nop returns a logger that discards everything. It is what commands
// get when --debug is off.
func Nop() *Logger {
	return &Logger{
		logger: log.New(io.Discard, "", 0),
	}
}

// newFallbackLogger creates a logger that writes to stderr when file logging fails
func newFallbackLogger(runID string, err error) *Logger {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	logger.Printf("WARNING: Failed to initialize file logging: %v", err)
	logger.Printf("Falling back to stderr logging")

	return &Logger{
		runID:  runID,
		file:   nil, // No file, using stderr
		logger: logger,
	}
}

// formatLogEntry creates a structured log entry with timestamp and level
func (l *Logger) formatLogEntry(level, message string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	return fmt.Sprintf("[%s] [%s] %s", timestamp, level, message)
}

func (l *Logger) write(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Println(l.formatLogEntry(level, fmt.Sprintf(format, v...)))
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.write("DEBUG", format, v...)
}

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.write("INFO", format, v...)
}

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.write("WARN", format, v...)
}

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.write("ERROR", format, v...)
}

// RunID returns the unique ID of this invocation. It is empty for Nop
// loggers.
func (l *Logger) RunID() string {
	return l.runID
}

// Path returns the log file path, or "" when logging to stderr or
// discarded.
func (l *Logger) Path() string {
	return l.path
}

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
