// Package preview draws a resolved frame as a wireframe: one translucent box
// per visible layer, optionally labelled with the layer name.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/layeranim/internal/config"
	"github.com/ivlev/layeranim/internal/keyframe"
	"github.com/ivlev/layeranim/internal/layer"
	"github.com/ivlev/layeranim/internal/system"
)

// DefaultCanvas is used when the background layer has no extent.
var DefaultCanvas = image.Pt(320, 240)

var palette = []color.RGBA{
	{0xe6, 0x19, 0x4b, 0xff},
	{0x3c, 0xb4, 0x4b, 0xff},
	{0x43, 0x63, 0xd8, 0xff},
	{0xf5, 0x82, 0x31, 0xff},
	{0x91, 0x1e, 0xb4, 0xff},
	{0x46, 0xf0, 0xf0, 0xff},
}

type Options struct {
	Scale     int
	Labels    bool
	BoxWidth  int
	BoxHeight int
}

// OptionsFrom takes the preview section of the tool configuration.
func OptionsFrom(c config.Preview) Options {
	return Options{Scale: c.Scale, Labels: c.Labels, BoxWidth: c.BoxWidth, BoxHeight: c.BoxHeight}
}

// Renderer turns layer tables into images of a fixed size.
type Renderer struct {
	opts Options
	size image.Point
}

func NewRenderer(t layer.Table, o Options) *Renderer {
	if o.Scale < 1 {
		o.Scale = 1
	}
	size := DefaultCanvas
	if bg := t.Layer(0); bg.Width > 0 && bg.Height > 0 {
		size = image.Pt(bg.Width, bg.Height)
	}
	return &Renderer{opts: o, size: size}
}

// Bounds is the rectangle of every image Render produces.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rectangle{Max: r.size.Mul(r.opts.Scale)}
}

// Box returns the rectangle layer rec occupies on the unscaled canvas.
func (r *Renderer) Box(rec *layer.Record) image.Rectangle {
	w, h := rec.Width, rec.Height
	if w <= 0 || h <= 0 {
		w, h = r.opts.BoxWidth, r.opts.BoxHeight
	}
	return image.Rect(rec.X, rec.Y, rec.X+w, rec.Y+h)
}

// Render draws t into a canvas taken from the system pool. Callers hand it
// back with system.PutCanvas once they are done with it.
func (r *Renderer) Render(t layer.Table) *image.RGBA {
	base := system.GetCanvas(image.Rectangle{Max: r.size})
	draw.Draw(base, base.Bounds(), image.White, image.Point{}, draw.Src)

	for i := 1; i <= t.Total(); i++ {
		rec := t.Layer(i)
		if !rec.Visible {
			continue
		}
		r.drawLayer(base, i, rec)
	}

	if r.opts.Scale == 1 {
		return base
	}
	dst := system.GetCanvas(r.Bounds())
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	system.PutCanvas(base)
	return dst
}

func (r *Renderer) drawLayer(dst *image.RGBA, i int, rec *layer.Record) {
	box := r.Box(rec).Intersect(dst.Bounds())
	if box.Empty() {
		return
	}
	c := palette[(i-1)%len(palette)]

	alpha := uint8(min(max(rec.Opacity, 0), keyframe.MaxOpacity) * 0xff / keyframe.MaxOpacity)
	mask := image.NewUniform(color.Alpha{A: alpha / 2})
	draw.DrawMask(dst, box, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)

	outline(dst, r.Box(rec), c)

	if r.opts.Labels {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(color.Black),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(rec.X+2, rec.Y+13),
		}
		d.DrawString(Label(i, rec))
	}
}

// Label is the text drawn inside a layer box.
func Label(i int, rec *layer.Record) string {
	if rec.Name == "" {
		return fmt.Sprintf("%d", i)
	}
	return fmt.Sprintf("%d %s", i, rec.Name)
}

func outline(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	b := img.Bounds()
	for x := r.Min.X; x < r.Max.X; x++ {
		for _, y := range []int{r.Min.Y, r.Max.Y - 1} {
			if image.Pt(x, y).In(b) {
				img.SetRGBA(x, y, c)
			}
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for _, x := range []int{r.Min.X, r.Max.X - 1} {
			if image.Pt(x, y).In(b) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
