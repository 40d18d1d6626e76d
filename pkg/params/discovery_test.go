package params

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightcone-ml/paramzoo/internal/testutil"
)

func TestIsManifestPath(t *testing.T) {
	assert.True(t, IsManifestPath("configs/train.yaml"))
	assert.True(t, IsManifestPath("train.yml"))
	assert.True(t, IsManifestPath("TRAIN.YAML"))
	assert.False(t, IsManifestPath("train.json"))
	assert.False(t, IsManifestPath("train.yaml.bak"))
	assert.False(t, IsManifestPath("yaml"))
}

func TestDiscoverWalksDirectories(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "a.yaml", "model: {}\n")
	testutil.WriteFile(t, root, "nested/b.yml", "setup: {}\n")
	testutil.WriteFile(t, root, "nested/deeper/c.yaml", "model: {}\n")
	testutil.WriteFile(t, root, "nested/readme.md", "not a manifest\n")
	testutil.WriteFile(t, root, ".hidden/skipped.yaml", "model: {}\n")

	found, err := Discover(root)
	require.NoError(t, err)

	require.Len(t, found, 3)
	assert.Equal(t, filepath.Join(root, "a.yaml"), found[0])
	assert.Equal(t, filepath.Join(root, "nested/b.yml"), found[1])
	assert.Equal(t, filepath.Join(root, "nested/deeper/c.yaml"), found[2])
}

func TestDiscoverMixesFilesAndDirs(t *testing.T) {
	root := t.TempDir()
	direct := testutil.WriteFile(t, root, "direct.yaml", "model: {}\n")
	testutil.WriteFile(t, root, "tree/inner.yaml", "model: {}\n")

	// Explicit files pass through even without walking; duplicates collapse.
	found, err := Discover(direct, filepath.Join(root, "tree"), direct)
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Contains(t, found, direct)
	assert.Contains(t, found, filepath.Join(root, "tree/inner.yaml"))
}

func TestDiscoverMissingPath(t *testing.T) {
	_, err := Discover("/does/not/exist")
	require.Error(t, err)
}

func TestDiscoverSortedOutput(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "z.yaml", "model: {}\n")
	testutil.WriteFile(t, root, "a.yaml", "model: {}\n")
	testutil.WriteFile(t, root, "m.yaml", "model: {}\n")

	found, err := Discover(root)
	require.NoError(t, err)

	require.Len(t, found, 3)
	assert.True(t, found[0] < found[1] && found[1] < found[2],
		"discovery output must be sorted for stable batch verdicts")
}
