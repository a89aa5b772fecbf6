package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ivlev/layeranim/internal/config"
	"github.com/ivlev/layeranim/internal/layer"
)

func TestPlayerWrapsAround(t *testing.T) {
	layers := newLayers()
	a := New(layers, config.Default().Limits)
	a.Export.Start, a.Export.End = 1, 3

	_, err := a.SetKeyFrame(1)
	require.NoError(t, err)
	layers[1].X = 40
	_, err = a.SetKeyFrame(3)
	require.NoError(t, err)

	var frames, xs []int
	p := NewPlayer(a, Hooks{FrameRendered: func(f int) {
		frames = append(frames, f)
		xs = append(xs, layers[1].X)
	}})

	p.Tick() // idle: nothing happens
	p.Play()
	p.Tick()
	p.Tick()
	p.Tick()
	p.Pause()
	p.Tick()

	require.Equal(t, []int{1, 2, 3, 1}, frames)
	require.Equal(t, []int{1, 21, 40, 1}, xs)
	require.Equal(t, Paused, p.State)

	p.Seek(99)
	require.Equal(t, 3, p.Frame())
	p.Stop()
	require.Equal(t, 1, p.Frame())
	require.Equal(t, Idle, p.State)
}

func TestPlayerRunStopsOnContext(t *testing.T) {
	a := New(layer.Slice{{Name: "bg"}}, config.Default().Limits)
	a.Export.Start, a.Export.End = 1, 5

	n := 0
	p := NewPlayer(a, Hooks{FrameRendered: func(int) { n++ }})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := p.Run(ctx, 5*time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, Paused, p.State)
	require.GreaterOrEqual(t, n, 1)
}
