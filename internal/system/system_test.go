package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWorkers(t *testing.T) {
	require.Equal(t, 3, Workers(3))
	require.GreaterOrEqual(t, Workers(0), 1)
}

func TestFindLatestProject(t *testing.T) {
	dir := t.TempDir()

	_, err := FindLatestProject(dir)
	require.Error(t, err)

	old := filepath.Join(dir, "old.txt")
	newer := filepath.Join(dir, "new.YAML")
	require.NoError(t, os.WriteFile(old, nil, 0o644))
	require.NoError(t, os.WriteFile(newer, nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frame.png"), nil, 0o644))

	now := time.Now()
	require.NoError(t, os.Chtimes(old, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	got, err := FindLatestProject(dir)
	require.NoError(t, err)
	require.Equal(t, newer, got)

	got, err = FindLatestProject(dir, newer)
	require.NoError(t, err)
	require.Equal(t, old, got)

	_, err = FindLatestProject(dir, newer, old)
	require.Error(t, err)
}

func TestFindLatestProjectRelativeSkip(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("layers.yaml", nil, 0o644))

	_, err := FindLatestProject(".", "layers.yaml", "layeranim.yaml")
	require.Error(t, err)
}

func TestCanvasPool(t *testing.T) {
	p := NewCanvasPool()
	r := image.Rect(0, 0, 8, 4)

	img := p.Get(r)
	require.Equal(t, r, img.Bounds())
	p.Put(img)
	p.Put(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	p.Put(nil)

	require.Equal(t, r, p.Get(r).Bounds())
}
