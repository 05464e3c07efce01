package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"https://github.com/ibneal/TensorTradeGMI/blob/main/README.md", "github_com_ibneal_TensorTradeGMI_blob_main_README"},
		{"https://example.com/", "example_com"},
		{"https://example.com/docs//intro", "example_com_docs_intro"},
		{"http://localhost:8080/a.b/c.md", "localhost_8080_a_b_c"},
		{"docs/README.md", "README"},
		{"/tmp/my notes.markdown", "my_notes"},
		{".", "index"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.source), tt.source)
	}
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("https://example.com/README.md", []byte("<h1>x</h1>"), ".html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "example_com_README.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<h1>x</h1>", string(data))
}

func TestNew_DefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	w, err := New("")
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, w.OutputDir)
}
