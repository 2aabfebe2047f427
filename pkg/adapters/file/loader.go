package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Loader implements ports.SourceLoader using the local filesystem.
type Loader struct {
	mu     sync.Mutex
	loaded []string
}

// New creates a new file system Loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the deck source at path.
func (l *Loader) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck source: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	l.mu.Lock()
	l.loaded = append(l.loaded, abs)
	l.mu.Unlock()
	return data, nil
}

// Loaded returns the absolute paths of every file read so far.
func (l *Loader) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.loaded...)
}
