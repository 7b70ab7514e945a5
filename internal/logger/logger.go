// Package logger holds the process-wide diagnostic logger.
//
// Diagnostic logs are separate from the status lines the commands print:
// status goes to the user through iostreams, diagnostics go here. The console
// sink only shows warnings unless --debug is set; the optional file sink
// (rotated by lumberjack) receives everything at the configured level.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Log is the global logger instance.
	Log = zerolog.Nop()

	// fileWriter is the rotating file sink, nil when file logging is off.
	fileWriter *lumberjack.Logger
)

// FileConfig configures the optional log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

func (c FileConfig) maxSizeMB() int {
	if c.MaxSizeMB <= 0 {
		return 10
	}
	return c.MaxSizeMB
}

func (c FileConfig) maxAgeDays() int {
	if c.MaxAgeDays <= 0 {
		return 14
	}
	return c.MaxAgeDays
}

func (c FileConfig) maxBackups() int {
	if c.MaxBackups <= 0 {
		return 3
	}
	return c.MaxBackups
}

func level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
}

// Init initializes console-only logging on w (normally os.Stderr).
func Init(debug bool, w io.Writer) {
	Log = zerolog.New(consoleWriter(w)).
		Level(level(debug)).
		With().
		Timestamp().
		Logger()
}

// InitWithFile initializes logging to the console and, when cfg.Path is set,
// to a rotating JSON log file. The file receives debug events even when the
// console is limited to warnings.
func InitWithFile(debug bool, w io.Writer, cfg FileConfig) error {
	if cfg.Path == "" {
		Init(debug, w)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	_ = CloseFileWriter()
	fileWriter = &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.maxSizeMB(),
		MaxAge:     cfg.maxAgeDays(),
		MaxBackups: cfg.maxBackups(),
		LocalTime:  true,
	}

	multi := zerolog.MultiLevelWriter(levelWriter{w: consoleWriter(w), min: level(debug)}, fileWriter)

	Log = zerolog.New(multi).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
	return nil
}

// levelWriter forwards only events at or above min to the console.
type levelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (lw levelWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func (lw levelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < lw.min {
		return len(p), nil
	}
	return lw.w.Write(p)
}

// CloseFileWriter closes the log file if one is open.
func CloseFileWriter() error {
	if fileWriter == nil {
		return nil
	}
	err := fileWriter.Close()
	fileWriter = nil
	return err
}

func Debug() *zerolog.Event { return Log.Debug() }
func Warn() *zerolog.Event  { return Log.Warn() }
