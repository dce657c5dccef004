package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_CreatesDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	w := NewWriter(nil)

	path, err := w.Write(dir, "planning_response.txt", "hello")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "planning_response.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriter_OverwritesInsteadOfAppending(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(nil)

	_, err := w.Write(dir, "out.txt", "first, longer content")
	require.NoError(t, err)
	path, err := w.Write(dir, "out.txt", "second")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestWriter_EmptyDirIsWorkingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	w := NewWriter(nil)

	path, err := w.Write("", "x.txt", "x")
	require.NoError(t, err)
	assert.Equal(t, "x.txt", path)
	assert.FileExists(t, "x.txt")
}

func TestWriter_RejectsEscapingNames(t *testing.T) {
	w := NewWriter(nil)
	for _, name := range []string{"../x.txt", "/etc/passwd", "a/../../x", ""} {
		_, err := w.Write(t.TempDir(), name, "x")
		assert.ErrorIs(t, err, ErrUnsafePath, name)
	}
}

func TestWriter_NestedName(t *testing.T) {
	dir := t.TempDir()
	path, err := NewWriter(nil).Write(dir, "src/model.py", "pass\n")
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, filepath.Join(dir, "src", "model.py"), path)
}
