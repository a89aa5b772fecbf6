package export

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivlev/layeranim/internal/config"
	"github.com/ivlev/layeranim/internal/engine"
	"github.com/ivlev/layeranim/internal/layer"
	"github.com/ivlev/layeranim/internal/preview"
	"github.com/ivlev/layeranim/internal/project"
)

func newAnim(t *testing.T) (*engine.Animation, layer.Slice) {
	t.Helper()
	layers := layer.Slice{
		{Name: "bg", Width: 40, Height: 30, Visible: true},
		{Name: "dot", X: 0, Y: 0, Width: 4, Height: 4, Opacity: 100, Visible: true},
	}
	a := engine.New(layers, config.Default().Limits)
	_, err := a.SetKeyFrame(1)
	require.NoError(t, err)
	layers[1].X = 30
	layers[1].Visible = false
	_, err = a.SetKeyFrame(4)
	require.NoError(t, err)
	layers[1].X = 7
	return a, layers
}

func TestRunVisitsRangeAndRestores(t *testing.T) {
	a, layers := newAnim(t)

	var xs []int
	var vis []bool
	err := Run(context.Background(), a, 1, 4, func(frame int, tb layer.Table) error {
		xs = append(xs, tb.Layer(1).X)
		vis = append(vis, tb.Layer(1).Visible)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 10, 20, 30}, xs)
	require.Equal(t, []bool{true, true, true, false}, vis)

	require.Equal(t, 7, layers[1].X)
	require.False(t, layers[1].Visible)
}

func TestRunStops(t *testing.T) {
	a, _ := newAnim(t)

	require.ErrorIs(t, Run(context.Background(), a, 3, 2, nil), ErrRange)

	boom := errors.New("boom")
	n := 0
	err := Run(context.Background(), a, 1, 4, func(int, layer.Table) error {
		n++
		if n == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Run(ctx, a, 1, 4, func(int, layer.Table) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestWritePNGs(t *testing.T) {
	a, _ := newAnim(t)
	o := OptionsFrom(project.Export{Start: 1, End: 4, Dir: filepath.Join(t.TempDir(), "out"), Prefix: "f_", Delay: -5}, preview.Options{Scale: 1})
	o.Workers = 2
	require.Equal(t, 5, o.Delay)

	n, err := WritePNGs(context.Background(), a, o)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	for f := 1; f <= 4; f++ {
		_, err := os.Stat(filepath.Join(o.Dir, o.FileName(f)))
		require.NoError(t, err)
	}
	require.Equal(t, "f_00003.png", o.FileName(3))
}

func TestWriteGIF(t *testing.T) {
	a, _ := newAnim(t)
	o := OptionsFrom(project.Export{Start: 1, End: 3, Delay: 8}, preview.Options{Scale: 1})

	var buf bytes.Buffer
	require.NoError(t, WriteGIF(context.Background(), a, &buf, o))

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, g.Image, 3)
	require.Equal(t, []int{8, 8, 8}, g.Delay)
}
