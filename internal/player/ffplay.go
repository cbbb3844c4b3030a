package player

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"
)

// FFPlay plays files through an external ffplay process. Pausing stops the
// process with a signal, so elapsed time is tracked on the wall clock.
type FFPlay struct {
	Binary string

	mu      sync.Mutex
	state   State
	cmd     *exec.Cmd
	done    chan struct{}
	started time.Time
	paused  time.Time
	offset  time.Duration
}

// NewFFPlay creates an engine using the ffplay found on PATH.
func NewFFPlay() *FFPlay {
	return &FFPlay{Binary: "ffplay", state: Stopped}
}

func ffplayArgs(path string) []string {
	return []string{"-v", "0", "-nodisp", "-autoexit", "-loglevel", "quiet", path}
}

// Start terminates the running process and spawns one for path.
func (p *FFPlay) Start(path string) error {
	p.Stop()

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %w", ErrNotStarted, err)
	}

	cmd := exec.Command(p.Binary, ffplayArgs(path)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotStarted, err)
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	p.mu.Lock()
	p.cmd = cmd
	p.done = done
	p.started = time.Now()
	p.offset = 0
	p.state = Playing
	p.mu.Unlock()
	return nil
}

// Stop kills the running process and waits for it to exit.
func (p *FFPlay) Stop() {
	p.mu.Lock()
	cmd, done := p.cmd, p.done
	p.cmd = nil
	p.state = Stopped
	p.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return
	}
	// A stopped process must be continued before it can handle the kill.
	_ = resumeProcess(cmd.Process)
	_ = cmd.Process.Kill()
	<-done
}

func (p *FFPlay) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.cmd == nil {
		return
	}
	if err := suspendProcess(p.cmd.Process); err != nil {
		return
	}
	p.offset += time.Since(p.started)
	p.paused = time.Now()
	p.state = Paused
}

func (p *FFPlay) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Paused || p.cmd == nil {
		return
	}
	if err := resumeProcess(p.cmd.Process); err != nil {
		return
	}
	p.started = time.Now()
	p.state = Playing
}

func (p *FFPlay) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Finished reports whether the process exited on its own.
func (p *FFPlay) Finished() bool {
	p.mu.Lock()
	done := p.done
	active := p.cmd != nil
	p.mu.Unlock()

	if !active || done == nil {
		return false
	}
	select {
	case <-done:
		return true
	default:
		return false
	}
}

func (p *FFPlay) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case Playing:
		return p.offset + time.Since(p.started)
	case Paused:
		return p.offset
	default:
		return 0
	}
}
