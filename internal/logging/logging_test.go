package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo, false)

	l.Info("book created", "title", "Dune", "author", "")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "book created")
	assert.Contains(t, out, "title=Dune")
	assert.Contains(t, out, "session=")
	assert.NotContains(t, out, "author=")
	assert.NotContains(t, out, "hidden")
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bookshelf.log")
	l, c, err := File(path, slog.LevelInfo)
	require.NoError(t, err)
	l.Warn("data file is not valid JSON")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "data file is not valid JSON")
}

func TestFile_Discard(t *testing.T) {
	l, c, err := File("", slog.LevelInfo)
	require.NoError(t, err)
	l.Info("nothing")
	assert.NoError(t, c.Close())
}
