package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layeranim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 25\nlimits:\n  cycles: 8\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 25, c.FPS)
	require.Equal(t, 8, c.Limits.Cycles)
	require.Equal(t, 1024, c.Limits.PosSlots)
	require.Equal(t, 0.35, c.Curviness)
	require.True(t, c.Preview.Labels)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layeranim.yaml")
	want := Default()
	want.Workers = 3
	want.Preview.Scale = 2
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
