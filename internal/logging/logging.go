// Package logging builds the leveled logger shared by the session and storage.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const prefix = "tasklist"

// New returns a logger writing to path, or to stderr when path is empty.
// The returned closer releases the log file.
func New(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	return NewWithWriter(w, lvl), closer, nil
}

func NewWithWriter(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// Discard is a logger for tests and callers that do not care.
func Discard() *log.Logger {
	return NewWithWriter(io.Discard, log.FatalLevel)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
