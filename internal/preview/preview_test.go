package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivlev/layeranim/internal/layer"
)

func sheet() layer.Slice {
	return layer.Slice{
		{Name: "bg", Width: 64, Height: 48, Visible: true},
		{Name: "a", X: 4, Y: 4, Width: 10, Height: 10, Opacity: 100, Visible: true},
		{Name: "b", X: 30, Y: 20, Opacity: 100, Visible: false},
	}
}

func TestRendererBounds(t *testing.T) {
	r := NewRenderer(sheet(), Options{Scale: 2, BoxWidth: 8, BoxHeight: 8})
	require.Equal(t, image.Rect(0, 0, 128, 96), r.Bounds())

	r = NewRenderer(layer.Slice{{Name: "bg"}}, Options{})
	require.Equal(t, image.Rectangle{Max: DefaultCanvas}, r.Bounds())
}

func TestBoxFallsBackToDefaultSize(t *testing.T) {
	s := sheet()
	r := NewRenderer(s, Options{BoxWidth: 8, BoxHeight: 6})
	require.Equal(t, image.Rect(4, 4, 14, 14), r.Box(s[1]))
	require.Equal(t, image.Rect(30, 20, 38, 26), r.Box(s[2]))
}

func TestRenderSkipsHiddenLayers(t *testing.T) {
	s := sheet()
	r := NewRenderer(s, Options{Scale: 1, BoxWidth: 8, BoxHeight: 8})

	img := r.Render(s)
	require.Equal(t, r.Bounds(), img.Bounds())

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	require.Equal(t, palette[0], img.RGBAAt(4, 4))
	require.NotEqual(t, white, img.RGBAAt(8, 11))
	require.Equal(t, white, img.RGBAAt(33, 23))
	require.Equal(t, white, img.RGBAAt(60, 2))
}

func TestRenderOpacity(t *testing.T) {
	s := sheet()
	s[1].Opacity = 0
	r := NewRenderer(s, Options{Scale: 1})

	img := r.Render(s)
	require.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, img.RGBAAt(8, 11))
}

func TestRenderScaled(t *testing.T) {
	s := sheet()
	r := NewRenderer(s, Options{Scale: 3})
	img := r.Render(s)
	require.Equal(t, palette[0], img.RGBAAt(12, 12))
}

func TestLabel(t *testing.T) {
	require.Equal(t, "3", Label(3, &layer.Record{}))
	require.Equal(t, "1 sun", Label(1, &layer.Record{Name: "sun"}))
}
