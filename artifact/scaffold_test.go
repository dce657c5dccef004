package artifact

import (
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderScaffold_SubstitutesPaperName(t *testing.T) {
	files, err := RenderScaffold("Foo Net")
	require.NoError(t, err)
	require.Len(t, files, 4)

	byName := map[string]string{}
	for _, f := range files {
		byName[f.Name] = f.Content
	}
	assert.Contains(t, byName["main.py"], `.format("Foo Net")`)
	assert.True(t, strings.HasPrefix(byName["config.yaml"], "# Demo configuration for Foo Net\n"))
	assert.Equal(t, "torch>=1.9.0\nnumpy>=1.21.0\npyyaml>=5.4.0\n", byName["requirements.txt"])
	assert.True(t, strings.HasPrefix(byName["README.md"], "# Foo Net Implementation\n"))
	assert.Contains(t, byName["README.md"], "demo implementation of the Foo Net paper")
}

func TestWriteScaffold_ExactlyFourFiles(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewWriter(nil).WriteScaffold(dir, "Foo")
	require.NoError(t, err)
	assert.Len(t, paths, 4)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	want := []string{"README.md", "config.yaml", "main.py", "requirements.txt"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("scaffold files mismatch (-want +got):\n%s", diff)
	}
}
