package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_FansOutToExtraSinks(t *testing.T) {
	var a, b bytes.Buffer
	logger := New(slog.LevelDebug, &a, &b)

	logger.Debug("slide opened", "slide", 3, "error", errors.New("boom"))

	for _, buf := range []*bytes.Buffer{&a, &b} {
		assert.Contains(t, buf.String(), "slide opened")
		assert.Contains(t, buf.String(), "slide=3")
		assert.Contains(t, buf.String(), "err=boom")
		assert.NotContains(t, buf.String(), "error=")
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.LevelInfo, &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(slog.LevelDebug, &buf).Debug("parsed", "error", "none")
	assert.Contains(t, buf.String(), "err=none")
}
