package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger provides leveled logging throughout the pipeline.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger
	tag   string
}

// NewLogger creates a new Logger writing to stdout/stderr.
func NewLogger() *Logger {
	return newLogger(os.Stdout, os.Stderr)
}

// NewLoggerTo sends every level to w. Tests pass io.Discard.
func NewLoggerTo(w io.Writer) *Logger {
	return newLogger(w, w)
}

func newLogger(out, errOut io.Writer) *Logger {
	flags := 0
	return &Logger{
		info:  log.New(out, "", flags),
		warn:  log.New(out, "", flags),
		err:   log.New(errOut, "", flags),
		debug: log.New(out, "", flags),
	}
}

// WithTag returns a logger that prefixes each line with tag, e.g. a run id.
// The receiver is unchanged.
func (l *Logger) WithTag(tag string) *Logger {
	c := *l
	c.tag = tag
	return &c
}

func (l *Logger) prefix() string {
	ts := time.Now().Format("2006-01-02 15:04:05")
	if l.tag == "" {
		return "[" + ts + "]"
	}
	return "[" + ts + "] [" + l.tag + "]"
}

func (l *Logger) Info(format string, args ...any) {
	l.info.Printf(fmt.Sprintf("%s \033[32mINFO\033[0m  %s\n", l.prefix(), format), args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.warn.Printf(fmt.Sprintf("%s \033[33mWARN\033[0m  %s\n", l.prefix(), format), args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf(fmt.Sprintf("%s \033[31mERROR\033[0m %s\n", l.prefix(), format), args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.debug.Printf(fmt.Sprintf("%s \033[36mDEBUG\033[0m %s\n", l.prefix(), format), args...)
}
