package player

import "time"

// Mock is a test double for an audio engine.
type Mock struct {
	state      State
	elapsed    time.Duration
	finished   bool
	startErr   error
	startCalls []string
	stopCalls  int
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped}
}

func (m *Mock) Start(path string) error {
	m.startCalls = append(m.startCalls, path)
	m.state = Stopped
	m.finished = false
	m.elapsed = 0
	if m.startErr != nil {
		return m.startErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.state = Stopped
}

func (m *Mock) Pause() {
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) State() State { return m.state }

func (m *Mock) Finished() bool { return m.finished }

func (m *Mock) Elapsed() time.Duration { return m.elapsed }

// Test helpers

func (m *Mock) SetState(s State) { m.state = s }

func (m *Mock) SetStartError(err error) { m.startErr = err }

func (m *Mock) SetElapsed(d time.Duration) { m.elapsed = d }

func (m *Mock) StartCalls() []string { return m.startCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

// SimulateFinished marks the current track as played to the end.
func (m *Mock) SimulateFinished() {
	m.finished = true
	m.state = Stopped
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
