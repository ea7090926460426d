package plotstyle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	params := Default()
	assert.Equal(t, 14, params["axes.labelsize"])
	assert.Equal(t, 0.8, params["lines.linewidth"])

	// Each call returns a fresh copy.
	params["axes.labelsize"] = 99
	assert.Equal(t, 14, Default()["axes.labelsize"])
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	params, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), params)
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"lines.linewidth: 1.5\nsavefig.dpi: 600\n"), 0644))

	params, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, params["lines.linewidth"])
	assert.Equal(t, 600, params["savefig.dpi"])
	// Untouched keys keep their defaults.
	assert.Equal(t, "tight", params["savefig.bbox"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
