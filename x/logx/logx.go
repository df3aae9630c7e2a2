// Package logx is a small leveled logger for firmware builds. Output goes
// through fmtx so MCU images avoid pulling in fmt. Loggers derived with With
// share one sink, so a level change made after boot (for example when the
// persisted debug flag is loaded) applies everywhere.
package logx

import (
	"io"
	"sync"

	"sensornode-go/x/fmtx"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	default:
		return "error"
	}
}

type sink struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// Logger writes "[tag] level: message" lines. A nil *Logger discards.
type Logger struct {
	s   *sink
	tag string
}

func New(w io.Writer, level Level) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{s: &sink{w: w, level: level}}
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return New(io.Discard, LevelError) }

// With returns a logger sharing the sink under a different tag.
func (l *Logger) With(tag string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{s: l.s, tag: tag}
}

func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.s.mu.Lock()
	l.s.level = level
	l.s.mu.Unlock()
}

// SetDebug maps the persisted debug flag onto a level.
func (l *Logger) SetDebug(on bool) {
	if on {
		l.SetLevel(LevelDebug)
	} else {
		l.SetLevel(LevelInfo)
	}
}

func (l *Logger) SetOutput(w io.Writer) {
	if l == nil || w == nil {
		return
	}
	l.s.mu.Lock()
	l.s.w = w
	l.s.mu.Unlock()
}

func (l *Logger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return level >= l.s.level
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *Logger) logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	msg := fmtx.Sprintf(format, args...)
	line := make([]byte, 0, len(l.tag)+len(msg)+12)
	if l.tag != "" {
		line = append(line, '[')
		line = append(line, l.tag...)
		line = append(line, "] "...)
	}
	if level != LevelInfo {
		line = append(line, level.String()...)
		line = append(line, ": "...)
	}
	line = append(line, msg...)
	line = append(line, '\n')

	l.s.mu.Lock()
	_, _ = l.s.w.Write(line)
	l.s.mu.Unlock()
}
