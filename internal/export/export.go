// Package export drives an Animation through a frame range and writes the
// resolved frames out.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/layeranim/internal/engine"
	"github.com/ivlev/layeranim/internal/layer"
	"github.com/ivlev/layeranim/internal/preview"
	"github.com/ivlev/layeranim/internal/project"
	"github.com/ivlev/layeranim/internal/system"
)

var ErrRange = errors.New("export: empty frame range")

// FrameFunc is called once per resolved frame with the layer table already
// updated for that frame. Returning an error stops the export.
type FrameFunc func(frame int, layers layer.Table) error

// Options controls a frame export.
type Options struct {
	Start, End int
	Dir        string
	Prefix     string
	Delay      int // centiseconds per frame
	Workers    int // 0 picks the number of CPUs
	Preview    preview.Options
	Log        zerolog.Logger
}

// OptionsFrom builds Options from the document's export settings.
func OptionsFrom(e project.Export, p preview.Options) Options {
	delay := e.Delay
	if delay < 0 {
		delay = -delay
	}
	return Options{
		Start:   e.Start,
		End:     e.End,
		Dir:     e.Dir,
		Prefix:  e.Prefix,
		Delay:   delay,
		Preview: p,
		Log:     zerolog.Nop(),
	}
}

// FileName is the name of frame's image inside Dir.
func (o Options) FileName(frame int) string {
	return fmt.Sprintf("%s%05d.png", o.Prefix, frame)
}

// Run resolves frames start..end in order and calls fn after each one. The
// layer table is restored to its previous state before Run returns.
func Run(ctx context.Context, anim *engine.Animation, start, end int, fn FrameFunc) error {
	if end < start {
		return ErrRange
	}
	saved := layer.Snapshot(anim.Layers)
	defer layer.Restore(anim.Layers, saved)

	for f := start; f <= end; f++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		anim.ApplyFrame(f)
		if err := fn(f, anim.Layers); err != nil {
			return fmt.Errorf("frame %d: %w", f, err)
		}
	}
	return nil
}

func freeze(t layer.Table) layer.Slice {
	recs := layer.Snapshot(t)
	s := make(layer.Slice, len(recs))
	for i := range recs {
		s[i] = &recs[i]
	}
	return s
}

// WritePNGs renders every frame of the range as a wireframe PNG in o.Dir.
// Frames are resolved sequentially and encoded by a bounded worker pool.
// It returns the number of files written.
func WritePNGs(ctx context.Context, anim *engine.Animation, o Options) (int, error) {
	if err := os.MkdirAll(o.Dir, 0755); err != nil {
		return 0, err
	}
	r := preview.NewRenderer(anim.Layers, o.Preview)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(system.Workers(o.Workers))

	o.Log.Info().Int("start", o.Start).Int("end", o.End).Str("dir", o.Dir).Msg("[*] writing frames")

	err := Run(gctx, anim, o.Start, o.End, func(frame int, t layer.Table) error {
		snap := freeze(t)
		path := filepath.Join(o.Dir, o.FileName(frame))
		g.Go(func() error {
			img := r.Render(snap)
			defer system.PutCanvas(img)
			if err := writePNG(path, img); err != nil {
				return err
			}
			o.Log.Debug().Int("frame", frame).Str("file", path).Msg("[>] frame written")
			return nil
		})
		return nil
	})
	if werr := g.Wait(); werr != nil {
		return 0, werr
	}
	if err != nil {
		return 0, err
	}

	n := o.End - o.Start + 1
	o.Log.Info().Int("frames", n).Msg("[+++] export finished")
	return n, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteGIF renders the range into one animated GIF. Each frame gets its own
// median-cut palette.
func WriteGIF(ctx context.Context, anim *engine.Animation, w io.Writer, o Options) error {
	r := preview.NewRenderer(anim.Layers, o.Preview)
	out := &gif.GIF{}
	q := quantize.MedianCutQuantizer{}

	err := Run(ctx, anim, o.Start, o.End, func(frame int, t layer.Table) error {
		img := r.Render(t)
		defer system.PutCanvas(img)

		pm := image.NewPaletted(img.Bounds(), q.Quantize(make(color.Palette, 0, 256), img))
		draw.Draw(pm, pm.Bounds(), img, img.Bounds().Min, draw.Src)
		out.Image = append(out.Image, pm)
		out.Delay = append(out.Delay, o.Delay)
		return nil
	})
	if err != nil {
		return err
	}
	o.Log.Info().Int("frames", len(out.Image)).Msg("[+++] gif encoded")
	return gif.EncodeAll(w, out)
}
