// Package logging provides the structured logger used across bento.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the subset of charmbracelet/log used by bento. Key-value pairs
// follow the message.
type Logger interface {
	Debug(interface{}, ...interface{})
	Info(interface{}, ...interface{})
	Warn(interface{}, ...interface{})
	Error(interface{}, ...interface{})
}

// Options configures New.
type Options struct {
	Writer io.Writer
	Level  string
	Prefix string
}

// New builds a Logger writing to opts.Writer, stderr by default. Unknown levels
// fall back to warn.
func New(opts Options) Logger {
	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.WarnLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
	})
}

// ValidLevel reports whether level is understood by New.
func ValidLevel(level string) bool {
	_, err := log.ParseLevel(level)
	return err == nil
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
