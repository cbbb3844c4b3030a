//go:build !windows

// Package stderr redirects file descriptor 2 into the log while the
// terminal UI runs. Audio libraries (ALSA through the beep speaker, the
// ffplay child) write there directly and would corrupt the screen.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Capture points fd 2 at a pipe and logs every non-empty line written to
// it. The returned function restores the original stderr and waits until
// the captured lines are logged. It is safe to call more than once.
func Capture(logger *log.Entry) (func(), error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	orig, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				logger.Warn(line)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = syscall.Dup2(orig, fd)
			_ = syscall.Close(orig)
			// fd 2 no longer refers to the pipe; closing w ends the reader.
			w.Close()
			<-done
			r.Close()
		})
	}, nil
}
