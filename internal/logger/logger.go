// Package logger wraps a rotated, structured logger for crewsolve. Most
// call sites log a handful of key/value pairs around one solve run (run id,
// variable count, solve duration), so the package exposes a Run-scoped
// logger that binds the run id once instead of repeating it on every call.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// base is the process-wide logger every Run is derived from. Package-level
// Debug/Info/Warn/Error log against it directly, for call sites that have
// no run id to correlate against (CLI plumbing, config/store setup).
var base *log.Logger

// Config controls where logs land and how verbose they are.
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init points the package-wide logger at a rotating file under
// cfg.ConfigDir/logs, additionally echoing to stderr when cfg.Debug is set.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "crewsolve.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var w io.Writer = rotator
	level := log.WarnLevel
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, rotator)
		level = log.DebugLevel
	}

	base = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "crewsolve",
	})
	return nil
}

// Run is a logger bound to one solve run's correlation id, so a driver.Run
// call logs "run_id=..." on every line without repeating the key/value pair
// at each call site.
type Run struct {
	l *log.Logger
}

// ForRun returns a Run-scoped logger tagging every subsequent log line with
// runID. Safe to call before Init; logging is a no-op until Init runs.
func ForRun(runID string) *Run {
	if base == nil {
		return &Run{}
	}
	return &Run{l: base.With("run_id", runID)}
}

// Debug logs msg and keyvals, tagged with this run's id.
func (r *Run) Debug(msg string, keyvals ...interface{}) {
	if r != nil && r.l != nil {
		r.l.Debug(msg, keyvals...)
	}
}

// Info logs msg and keyvals, tagged with this run's id.
func (r *Run) Info(msg string, keyvals ...interface{}) {
	if r != nil && r.l != nil {
		r.l.Info(msg, keyvals...)
	}
}

// Warn logs msg and keyvals, tagged with this run's id.
func (r *Run) Warn(msg string, keyvals ...interface{}) {
	if r != nil && r.l != nil {
		r.l.Warn(msg, keyvals...)
	}
}

// Debug logs against the process-wide logger, for call sites with no run to correlate against.
func Debug(msg string, keyvals ...interface{}) {
	if base != nil {
		base.Debug(msg, keyvals...)
	}
}

// Info logs against the process-wide logger.
func Info(msg string, keyvals ...interface{}) {
	if base != nil {
		base.Info(msg, keyvals...)
	}
}

// Warn logs against the process-wide logger.
func Warn(msg string, keyvals ...interface{}) {
	if base != nil {
		base.Warn(msg, keyvals...)
	}
}

// Error logs against the process-wide logger.
func Error(msg string, keyvals ...interface{}) {
	if base != nil {
		base.Error(msg, keyvals...)
	}
}

// Fatal logs against the process-wide logger, then exits the process.
func Fatal(msg string, keyvals ...interface{}) {
	if base != nil {
		base.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
