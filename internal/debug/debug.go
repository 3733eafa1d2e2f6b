package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build flag for debug mode - can be overridden at build time
// go build -ldflags "-X github.com/standardbeagle/b64x/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// debugFile holds the open file handle if debug output goes to a file
var debugFile *os.File

// logger writes to the configured debug output; it is a no-op logger while
// no output is set
var logger = zap.NewNop()

// debugMutex protects access to debug output and the logger
var debugMutex sync.Mutex

// newLogger builds a console logger without timestamps writing to w
func newLogger(w io.Writer) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// SetDebugOutput sets a custom writer for debug output.
// Pass nil to disable debug output entirely.
func SetDebugOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	setOutputLocked(w)
}

func setOutputLocked(w io.Writer) {
	_ = logger.Sync()
	if w == nil {
		logger = zap.NewNop()
		return
	}
	logger = newLogger(w)
}

// InitDebugLogFile initializes debug logging to a file.
// Returns the path to the log file, or an error if initialization fails.
// Call CloseDebugLog when done to ensure the file is properly closed.
func InitDebugLogFile() (string, error) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	// Create log directory
	logDir := filepath.Join(os.TempDir(), "b64x-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	// Create timestamped log file
	timestamp := time.Now().Format("2006-01-02T150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugFile = file
	setOutputLocked(file)
	return logPath, nil
}

// CloseDebugLog closes the debug log file if one is open.
func CloseDebugLog() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debugFile != nil {
		setOutputLocked(nil)
		err := debugFile.Close()
		debugFile = nil
		return err
	}
	return nil
}

// IsDebugEnabled returns true if debug mode is enabled by build flag or environment
func IsDebugEnabled() bool {
	// Check build flag first
	if EnableDebug == "true" {
		return true
	}

	// Allow runtime override via environment variable
	if os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true" {
		return true
	}

	return false
}

// Logger returns the structured logger for debug output.
// It is a no-op logger unless debug mode is enabled and output is configured.
func Logger() *zap.Logger {
	if !IsDebugEnabled() {
		return zap.NewNop()
	}
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return logger
}

// Printf prints debug information only when debug mode is enabled and output is configured
func Printf(format string, args ...interface{}) {
	Logger().Sugar().Debug(message(format, args...))
}

// Println prints debug information only when debug mode is enabled and output is configured
func Println(args ...interface{}) {
	Logger().Sugar().Debug(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Log provides structured debug logging with component names
func Log(component, format string, args ...interface{}) {
	Logger().Named(component).Debug(message(format, args...))
}

// LogConfig provides debug logging specifically for settings loading
func LogConfig(format string, args ...interface{}) {
	Log("CONFIG", format, args...)
}

// LogRegistry provides debug logging specifically for alphabet registration
func LogRegistry(format string, args ...interface{}) {
	Log("REGISTRY", format, args...)
}

// LogCLI provides debug logging specifically for command execution
func LogCLI(format string, args ...interface{}) {
	Log("CLI", format, args...)
}

// Fatal outputs a catastrophic error message to the debug log and returns a fatal error.
// Callers decide whether to exit.
func Fatal(format string, args ...interface{}) error {
	msg := message(format, args...)
	Logger().Error(msg)
	return fmt.Errorf("fatal error: %s", msg)
}

// Sync flushes any buffered log entries.
func Sync() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return logger.Sync()
}

// message formats a log line without the trailing newline zap adds itself
func message(format string, args ...interface{}) string {
	return strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
}
