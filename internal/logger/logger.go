// Package logger owns the process-wide structured logger. Output goes to a
// rotating file under the config directory; in debug mode it is also teed to
// stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDirName    = "logs"
	logFileName   = "tally.log"
	maxSizeMB     = 10
	maxBackups    = 3
	maxAgeDays    = 28
	defaultPrefix = "tally"
)

var (
	// Logger is the global logger instance, nil until Init succeeds.
	Logger *log.Logger

	logPath string
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init creates <ConfigDir>/logs and points the global logger at tally.log.
func Init(cfg Config) error {
	dir := filepath.Join(cfg.ConfigDir, logDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	logPath = filepath.Join(dir, logFileName)

	var w io.Writer = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		w = io.MultiWriter(os.Stderr, w)
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          defaultPrefix,
	})
	return nil
}

// Path returns the active log file, or "" before Init.
func Path() string {
	return logPath
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
