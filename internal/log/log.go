// Package log provides the process-wide loggers. The interactive display owns
// the terminal, so everything goes to a rotating file under the user's
// config directory.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"redox/internal/config"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger
)

const logName = "redox.log"

var (
	logFileName = filepath.Join(os.TempDir(), logName)
	logFile     io.WriteCloser
)

func init() {
	// Default loggers so that tests and early startup never hit a nil logger.
	InfoLog = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	WarningLog = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime)
	ErrorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
}

// GetLogDir returns the directory where logs should be stored
func GetLogDir(cfg config.LogConfig) (string, error) {
	if !cfg.Enabled {
		return os.TempDir(), nil
	}
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir(), fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "redox", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return os.TempDir(), fmt.Errorf("failed to create log directory: %w", err)
	}
	return dir, nil
}

// Initialize points the loggers at a rotating file. Call Close when done.
func Initialize(cfg config.LogConfig) {
	if !cfg.Enabled {
		InfoLog = log.New(io.Discard, "", 0)
		WarningLog = log.New(io.Discard, "", 0)
		ErrorLog = log.New(io.Discard, "", 0)
		return
	}

	dir, err := GetLogDir(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default log file location: %v\n", err)
	}
	if dir != "" {
		logFileName = filepath.Join(dir, logName)
	}

	writer := &lumberjack.Logger{
		Filename:   logFileName,
		MaxSize:    cfg.MaxSize, // megabytes
		MaxBackups: cfg.MaxFiles,
		MaxAge:     cfg.MaxAge, // days
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	logFile = writer

	InfoLog = log.New(writer, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(writer, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(writer, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// Path returns the file the loggers currently write to
func Path() string {
	return logFileName
}

func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
