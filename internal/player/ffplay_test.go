package player

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestFFPlayArgs(t *testing.T) {
	args := ffplayArgs("/music/songs/abc.mp3")

	if args[len(args)-1] != "/music/songs/abc.mp3" {
		t.Errorf("last arg = %q, want file path", args[len(args)-1])
	}
	for _, flag := range []string{"-nodisp", "-autoexit"} {
		if !slices.Contains(args, flag) {
			t.Errorf("args %v missing %s", args, flag)
		}
	}
}

func TestFFPlay_StartMissingFile(t *testing.T) {
	p := NewFFPlay()

	err := p.Start(filepath.Join(t.TempDir(), "missing.mp3"))
	if !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Start() error = %v, want ErrNotStarted", err)
	}
	if p.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", p.State())
	}
	if p.Finished() {
		t.Error("Finished() should be false when nothing started")
	}
	if p.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, want 0", p.Elapsed())
	}
}

func TestFFPlay_StartMissingBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp3")
	writeFile(t, path)

	p := NewFFPlay()
	p.Binary = filepath.Join(t.TempDir(), "no-such-ffplay")

	if err := p.Start(path); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Start() error = %v, want ErrNotStarted", err)
	}
	if p.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", p.State())
	}
}

func TestBeep_StartUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ogg")
	writeFile(t, path)

	p := NewBeep()
	if err := p.Start(path); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Start() error = %v, want ErrNotStarted", err)
	}
	if p.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", p.State())
	}
}
