package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// resampleQuality is passed to beep.Resample when a file's sample rate
// differs from the speaker's.
const resampleQuality = 4

// Beep plays files in-process through the system speaker.
type Beep struct {
	mu       sync.Mutex
	state    State
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     *os.File

	// generation guards the end-of-stream callback against firing for a
	// track that has already been replaced.
	generation atomic.Uint64
	finished   atomic.Bool
}

var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// NewBeep creates a stopped beep engine.
func NewBeep() *Beep {
	return &Beep{state: Stopped}
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".wav":
		return wav.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported format: %s", ext)
	}
}

// Start stops the active track and plays path.
func (p *Beep) Start(path string) error {
	p.Stop()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotStarted, err)
	}

	streamer, format, err := decode(path, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: decode %s: %w", ErrNotStarted, filepath.Base(path), err)
	}

	speakerOnce.Do(func() {
		speakerRate = format.SampleRate
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	if speakerErr != nil {
		streamer.Close()
		f.Close()
		return fmt.Errorf("%w: speaker: %w", ErrNotStarted, speakerErr)
	}

	var src beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		src = beep.Resample(resampleQuality, format.SampleRate, speakerRate, streamer)
	}

	p.mu.Lock()
	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: src}
	p.state = Playing
	p.finished.Store(false)
	gen := p.generation.Add(1)
	ctrl := p.ctrl
	p.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		if p.generation.Load() == gen {
			p.finished.Store(true)
		}
	})))

	return nil
}

// Stop stops playback and releases the file.
func (p *Beep) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Stopped && p.streamer == nil {
		return
	}
	p.generation.Add(1)

	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.state = Stopped
}

// Pause pauses playback.
func (p *Beep) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused playback.
func (p *Beep) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

func (p *Beep) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Beep) Finished() bool {
	return p.finished.Load()
}

// Elapsed returns the decoder position of the active track.
func (p *Beep) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}
