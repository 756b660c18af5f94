// Package logging is the leveled logger shared by the site, the particle
// renderer and the terminal preview.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Default writes INFO/DEBUG to one writer and WARN/ERROR to another.
type Default struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

// New logs to stdout and stderr.
func New(prefix string, debug bool) *Default {
	return NewWriter(prefix, debug, os.Stdout, os.Stderr)
}

func NewWriter(prefix string, debug bool, out, errOut io.Writer) *Default {
	flags := log.LstdFlags | log.Lmicroseconds
	return &Default{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

func (l *Default) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *Default) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *Default) line(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *Default) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.line("DEBUG", format, args...))
}

func (l *Default) Infof(format string, args ...any) {
	l.out.Print(l.line("INFO", format, args...))
}

func (l *Default) Warnf(format string, args ...any) {
	l.err.Print(l.line("WARN", format, args...))
}

func (l *Default) Errorf(format string, args ...any) {
	l.err.Print(l.line("ERROR", format, args...))
}

// Nop discards everything.
type Nop struct{}

func (Nop) DebugEnabled() bool    { return false }
func (Nop) SetDebug(bool)         {}
func (Nop) Debugf(string, ...any) {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}
