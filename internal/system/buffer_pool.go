package system

import (
	"image"
	"sync"
)

// CanvasPool hands out *image.RGBA canvases and takes them back for reuse.
// Canvases are grouped by their exact bounds; a Put of a size that was never
// requested is dropped.
type CanvasPool struct {
	sizes sync.Map // image.Rectangle -> *sync.Pool
}

var canvases CanvasPool

func NewCanvasPool() *CanvasPool { return &CanvasPool{} }

// GetCanvas takes a canvas with bounds rect from the shared pool. Its pixels
// are whatever the previous user left behind.
func GetCanvas(rect image.Rectangle) *image.RGBA { return canvases.Get(rect) }

// PutCanvas returns img to the shared pool.
func PutCanvas(img *image.RGBA) { canvases.Put(img) }

func (p *CanvasPool) Get(rect image.Rectangle) *image.RGBA {
	sp, ok := p.sizes.Load(rect)
	if !ok {
		sp, _ = p.sizes.LoadOrStore(rect, &sync.Pool{
			New: func() any { return image.NewRGBA(rect) },
		})
	}
	return sp.(*sync.Pool).Get().(*image.RGBA)
}

func (p *CanvasPool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	if sp, ok := p.sizes.Load(img.Rect); ok {
		sp.(*sync.Pool).Put(img)
	}
}
