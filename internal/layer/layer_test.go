package layer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSheetWriteRead(t *testing.T) {
	table := Slice{
		{Name: "background", Width: 320, Height: 200, Opacity: 100, Visible: true},
		{Name: "ball", X: 12, Y: -4, Width: 16, Height: 16, Opacity: 70},
	}

	path := filepath.Join(t.TempDir(), "layers.yaml")
	require.NoError(t, WriteSheet(table, path))

	got, err := ReadSheet(path)
	require.NoError(t, err)
	require.Equal(t, 1, got.Total())
	require.Equal(t, *table[1], *got.Layer(1))
	require.Equal(t, *table[0], *got.Layer(0))
}

func TestReadSheetEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, WriteSheet(Slice{}, path))

	_, err := ReadSheet(path)
	require.ErrorIs(t, err, ErrEmptySheet)
}

func TestSnapshotRestore(t *testing.T) {
	table := Slice{{Name: "bg"}, {Name: "a", X: 1}}
	snap := Snapshot(table)

	table[1].X = 99
	table[1].Visible = true
	Restore(table, snap)

	require.Equal(t, Record{Name: "a", X: 1}, *table[1])
}
