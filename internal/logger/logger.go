// Package logger provides a leveled console logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ConsoleLogger writes every message to a line-oriented stream, one
// physical line per "\n"-separated segment of the message.
// It is safe for concurrent use.
type ConsoleLogger struct {
	prefix string
	out    io.Writer
	colors map[Level]*color.Color
	mu     sync.Mutex
}

// Option configures a ConsoleLogger.
type Option func(*ConsoleLogger)

// WithWriter sets the output stream. Defaults to os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(l *ConsoleLogger) {
		l.out = w
	}
}

// WithColor colours the level token. The rest of the line is unchanged.
func WithColor(enabled bool) Option {
	return func(l *ConsoleLogger) {
		if !enabled {
			l.colors = nil
			return
		}
		l.colors = make(map[Level]*color.Color, len(levelColors))
		for level, attr := range levelColors {
			c := color.New(attr)
			c.EnableColor()
			l.colors[level] = c
		}
	}
}

// New creates a console logger. An empty prefix omits the prefix column.
func New(prefix string, opts ...Option) *ConsoleLogger {
	l := &ConsoleLogger{
		prefix: prefix,
		out:    os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.out == nil {
		l.out = os.Stderr
	}
	return l
}

var levelColors = map[Level]color.Attribute{
	TraceLevel: color.FgHiBlack,
	DebugLevel: color.FgCyan,
	InfoLevel:  color.FgGreen,
	WarnLevel:  color.FgYellow,
	ErrorLevel: color.FgRed,
}

// Log renders msg at the given level.
func (l *ConsoleLogger) Log(level Level, msg Message) {
	text := ""
	if msg != nil {
		text = msg.Describe()
	}

	tag := level.String()
	if c, ok := l.colors[level]; ok {
		tag = c.Sprint(tag)
	}

	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(tag)
		b.WriteString(" | ")
		if l.prefix != "" {
			b.WriteString(l.prefix)
			b.WriteString(" | ")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, b.String())
}

// Trace logs msg at trace level.
func (l *ConsoleLogger) Trace(msg Message) { l.Log(TraceLevel, msg) }

// Debug logs msg at debug level.
func (l *ConsoleLogger) Debug(msg Message) { l.Log(DebugLevel, msg) }

// Info logs msg at info level.
func (l *ConsoleLogger) Info(msg Message) { l.Log(InfoLevel, msg) }

// Warn logs msg at warn level.
func (l *ConsoleLogger) Warn(msg Message) { l.Log(WarnLevel, msg) }

// Error logs msg at error level.
func (l *ConsoleLogger) Error(msg Message) { l.Log(ErrorLevel, msg) }

// Tracef formats according to a format specifier and logs at trace level.
func (l *ConsoleLogger) Tracef(format string, v ...any) {
	l.Log(TraceLevel, Text(fmt.Sprintf(format, v...)))
}

// Debugf formats according to a format specifier and logs at debug level.
func (l *ConsoleLogger) Debugf(format string, v ...any) {
	l.Log(DebugLevel, Text(fmt.Sprintf(format, v...)))
}

// Infof formats according to a format specifier and logs at info level.
func (l *ConsoleLogger) Infof(format string, v ...any) {
	l.Log(InfoLevel, Text(fmt.Sprintf(format, v...)))
}

// Warnf formats according to a format specifier and logs at warn level.
func (l *ConsoleLogger) Warnf(format string, v ...any) {
	l.Log(WarnLevel, Text(fmt.Sprintf(format, v...)))
}

// Errorf formats according to a format specifier and logs at error level.
func (l *ConsoleLogger) Errorf(format string, v ...any) {
	l.Log(ErrorLevel, Text(fmt.Sprintf(format, v...)))
}
