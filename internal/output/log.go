// Package output provides terminal output utilities: structured
// logging, styles, tables, and spinner helpers.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package logger. Commands configure it once through
// SetupLogging during PersistentPreRunE.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	ReportCaller:    false,
})

// LogConfig controls logger behavior.
type LogConfig struct {
	// Verbose enables debug level and forces timestamps and caller
	// reporting on.
	Verbose bool

	// Quiet raises the level to warnings and errors only.
	Quiet bool

	// Silent discards all log output. Artifact and manifest output
	// still reaches stdout.
	Silent bool

	// Timestamps toggles timestamps in log output. Nil means the
	// default (on). Verbose overrides it.
	Timestamps *bool
}

// SetupLogging configures the package logger.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	switch {
	case cfg.Verbose:
		level = log.DebugLevel
	case cfg.Quiet:
		level = log.WarnLevel
	}

	timestamps := true
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}
	if cfg.Verbose {
		timestamps = true
	}

	var w io.Writer = os.Stderr
	if cfg.Silent {
		w = io.Discard
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// BundleLogger returns a logger prefixed with the bundle name, for use
// inside per-bundle pipeline runs.
func BundleLogger(bundleName string) *log.Logger {
	return logger.WithPrefix(bundleName)
}

// BoolPtr returns a pointer to b. Convenience for LogConfig.Timestamps.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Print prints a message to stdout without any formatting.
func Print(msg string) {
	os.Stdout.WriteString(msg)
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	os.Stdout.WriteString(msg + "\n")
}
