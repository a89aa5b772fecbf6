package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	want := sample(t)

	for _, name := range []string{"anim.txt", "nested/anim.yaml", "anim.YML"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, want), name)

		got, sum, err := Load(path, Limits{})
		require.NoError(t, err, name)
		require.False(t, sum.Truncated())
		requireSame(t, want, got)
	}
}

func TestIsYAML(t *testing.T) {
	require.True(t, IsYAML("a/b.yaml"))
	require.True(t, IsYAML("B.YML"))
	require.False(t, IsYAML("b.txt"))
	require.False(t, IsYAML("yaml"))
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "none.txt"), Limits{})
	require.Error(t, err)
}
