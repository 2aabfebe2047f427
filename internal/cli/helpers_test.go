package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sliderepl.log")

	logger, closer, err := createLogger(false, path)
	require.NoError(t, err)
	logger.Debug("slide opened", "slide", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "slide opened")
}

func TestPrintSystemMessage(t *testing.T) {
	var buf bytes.Buffer
	printSystemMessage(&buf, "%s changed", "deck.star")
	assert.Equal(t, "% deck.star changed\n", buf.String())
}

func TestSignalContext(t *testing.T) {
	t.Run("Signal cancels and is remembered", func(t *testing.T) {
		sc := NewSignalContext(context.Background(), syscall.SIGUSR1)
		defer sc.Cancel()

		require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))

		select {
		case <-sc.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("context was not cancelled by the signal")
		}
		assert.Equal(t, syscall.SIGUSR1, sc.Signal())
	})

	t.Run("Cancel leaves no signal", func(t *testing.T) {
		sc := NewSignalContext(context.Background(), syscall.SIGUSR2)
		sc.Cancel()

		<-sc.Done()
		assert.Nil(t, sc.Signal())
	})
}
