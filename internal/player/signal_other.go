//go:build !unix

package player

import (
	"errors"
	"os"
)

var errNoSignals = errors.New("pausing an external process is not supported on this platform")

func suspendProcess(*os.Process) error { return errNoSignals }

func resumeProcess(*os.Process) error { return errNoSignals }
