// Package logging is the CLI's diagnostic logger, a thin layer over zerolog.
// Diagnostics go to stderr so they never mix with command output.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger.
var Logger zerolog.Logger

// Level is a log level.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
)

// Config controls where and how diagnostics are written.
type Config struct {
	// Level is the minimum level written. Verbose overrides it with DebugLevel.
	Level   Level
	Verbose bool

	// Output defaults to os.Stderr.
	Output io.Writer

	// JSON writes one JSON object per event instead of console lines.
	JSON    bool
	NoColor bool
}

// DefaultConfig writes warnings and errors to stderr as console lines.
func DefaultConfig() Config {
	return Config{
		Level:  WarnLevel,
		Output: os.Stderr,
	}
}

// Init replaces Logger according to cfg.
func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := cfg.Level
	if cfg.Verbose {
		level = DebugLevel
	}

	output := cfg.Output
	if !cfg.JSON {
		output = zerolog.ConsoleWriter{
			Out:          cfg.Output,
			NoColor:      cfg.NoColor,
			PartsExclude: []string{zerolog.TimestampFieldName},
		}
	}

	Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// ParseLevel parses a level name, case-insensitively. Unknown names give
// WarnLevel.
func ParseLevel(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "ERROR":
		return ErrorLevel
	default:
		return WarnLevel
	}
}

func Debug() *zerolog.Event {
	return Logger.Debug()
}

func Info() *zerolog.Event {
	return Logger.Info()
}

func Warn() *zerolog.Event {
	return Logger.Warn()
}

func Error() *zerolog.Event {
	return Logger.Error()
}

func init() {
	Init(DefaultConfig())
}
