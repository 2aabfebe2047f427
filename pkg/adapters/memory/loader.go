package memory

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// Loader implements ports.SourceLoader using an in-memory map.
// Paths are cleaned before lookup so includes resolved with filepath.Join match.
type Loader struct {
	mu      sync.Mutex
	sources map[string][]byte
	loaded  []string
}

// NewLoader creates a new Loader with the provided deck sources.
func NewLoader(data map[string]string) *Loader {
	sources := make(map[string][]byte, len(data))
	for k, v := range data {
		sources[filepath.Clean(k)] = []byte(v)
	}
	return &Loader{sources: sources}
}

// Load returns the content registered for path.
func (l *Loader) Load(path string) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	content, ok := l.sources[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("source not found: %s", path)
	}
	l.loaded = append(l.loaded, filepath.Clean(path))
	return content, nil
}

// Put replaces or adds a source, e.g. to simulate an edit before a reload.
func (l *Loader) Put(path, content string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources[filepath.Clean(path)] = []byte(content)
}

// Loaded returns every path served so far.
func (l *Loader) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.loaded...)
}

// Paths returns all registered paths, sorted.
func (l *Loader) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]string, 0, len(l.sources))
	for k := range l.sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
