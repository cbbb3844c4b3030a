package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// binding ties a value to the file it was loaded from.
type binding struct {
	path  string
	value any
}

// Manager loads JSON files into values and writes them back on SaveAll.
// Values are held by pointer, so every holder sees later mutations.
type Manager struct {
	mu       sync.Mutex
	bindings []binding
}

// NewManager creates a manager with no bound files.
func NewManager() *Manager {
	return &Manager{}
}

// Load binds path to v. When the file does not exist it is created with
// def encoded as JSON first. v must be a pointer.
func (m *Manager) Load(path string, v, def any) error {
	if err := CreateIfMissing(path, def); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	m.mu.Lock()
	m.bindings = append(m.bindings, binding{path: path, value: v})
	m.mu.Unlock()
	return nil
}

// Save writes v to path as indented JSON.
func Save(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "    "); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// SaveAll writes every bound value back to its file.
func (m *Manager) SaveAll() error {
	m.mu.Lock()
	bindings := make([]binding, len(m.bindings))
	copy(bindings, m.bindings)
	m.mu.Unlock()

	var errs []error
	for _, b := range bindings {
		if err := Save(b.path, b.value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Paths returns the bound files in load order.
func (m *Manager) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.bindings))
	for i, b := range m.bindings {
		out[i] = b.path
	}
	return out
}

// CreateIfMissing writes content as JSON to path unless the file exists,
// creating parent directories as needed.
func CreateIfMissing(path string, content any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode default for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
