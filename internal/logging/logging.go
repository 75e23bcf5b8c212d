// Package logging provides a small leveled wrapper around the standard
// log package. It exists so the rest of the codebase can gate verbose
// diagnostics behind FLOORPLAN_LOG_LEVEL without pulling in a structured
// logging dependency the rest of the corpus does not otherwise use.
package logging

import (
	"log"
	"os"
)

// Level is one of the four leveled-logging thresholds.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts an env var value into a Level, defaulting to
// LevelInfo for anything unrecognized.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger that writes to an underlying *log.Logger.
type Logger struct {
	level  Level
	target *log.Logger
}

// New returns a Logger writing to os.Stderr at the given level, matching
// the teacher binary's convention of reserving stdout for responses.
func New(level Level) *Logger {
	return &Logger{
		level:  level,
		target: log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

func (l *Logger) logf(level Level, prefix, format string, args ...any) {
	if level < l.level {
		return
	}
	l.target.Printf(prefix+" "+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, "[DEBUG]", format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, "[INFO]", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, "[WARN]", format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, "[ERROR]", format, args...) }
