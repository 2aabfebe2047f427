package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/sliderepl/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "deck.star")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(deck, []byte("### slide::\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte(""), 0o644))

	out := &syncBuffer{}
	w, err := NewWatcher(logging.NewNop(), out)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch([]string{deck}))

	t.Run("Unrelated file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
		time.Sleep(100 * time.Millisecond)
		assert.False(t, w.Stale())
	})

	t.Run("Deck change", func(t *testing.T) {
		require.NoError(t, os.WriteFile(deck, []byte("### slide::\nx = 1\n"), 0o644))
		assert.Eventually(t, w.Stale, 2*time.Second, 20*time.Millisecond)
		assert.False(t, w.Stale(), "the flag resets once read")
		assert.Contains(t, out.String(), "% deck.star changed")
	})
}
