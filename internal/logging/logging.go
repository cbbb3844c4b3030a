// Package logging sends logrus output to a file, since the terminal
// belongs to the UI.
package logging

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
)

// Formatter returns the log line format used by the application.
func Formatter() log.Formatter {
	return &nested.Formatter{
		FieldsOrder:     []string{"module", "component"},
		TimestampFormat: time.RFC3339,
		NoColors:        true,
	}
}

// Setup rotates the log at path to prevPath, opens a fresh log file and
// points the standard logger at it. The returned closer flushes the file.
func Setup(path, prevPath, level string) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := rotate(path, prevPath); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	log.SetOutput(f)
	log.SetFormatter(Formatter())
	log.SetLevel(lvl)
	return f, nil
}

func rotate(path, prevPath string) error {
	err := os.Rename(path, prevPath)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("rotate log: %w", err)
}

// Discard silences the standard logger.
func Discard() {
	log.SetOutput(io.Discard)
}
