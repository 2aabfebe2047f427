package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/sliderepl/pkg/adapters/file"
	contract "github.com/aretw0/sliderepl/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader_Contract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.star")
	content := []byte("### slide::\nx = 1\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	loader := file.New()
	contract.SourceLoaderContractTest(t, loader, map[string][]byte{path: content})
}

func TestFileLoader_RecordsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.star")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))

	loader := file.New()
	_, err := loader.Load(path)
	require.NoError(t, err)

	loaded := loader.Loaded()
	require.Len(t, loaded, 1)
	assert.True(t, filepath.IsAbs(loaded[0]))
}
