package system

import (
	"image"
	"sync"
	"sync/atomic"
)

// ImagePool hands out frame buffers by size. Frames of one video all share
// a size, so after the first few frames every render worker reuses buffers.
type ImagePool struct {
	bySize    sync.Map // image.Point -> *sync.Pool
	allocated atomic.Int64
}

// NewImagePool creates an empty pool
func NewImagePool() *ImagePool {
	return &ImagePool{}
}

var frames = NewImagePool()

// GetImage returns a frame of the given size from the shared pool, with
// bounds starting at (0, 0). Its pixels are undefined.
func GetImage(rect image.Rectangle) *image.RGBA {
	return frames.Get(rect)
}

// PutImage hands img back to the shared pool
func PutImage(img *image.RGBA) {
	frames.Put(img)
}

// AllocatedFrames is the number of buffers the shared pool had to allocate
func AllocatedFrames() int64 {
	return frames.Allocated()
}

func (p *ImagePool) sizePool(size image.Point) *sync.Pool {
	if sp, ok := p.bySize.Load(size); ok {
		return sp.(*sync.Pool)
	}
	sp, _ := p.bySize.LoadOrStore(size, &sync.Pool{
		New: func() any {
			p.allocated.Add(1)
			return image.NewRGBA(image.Rectangle{Max: size})
		},
	})
	return sp.(*sync.Pool)
}

// Get returns a buffer of rect's size. Only the size of rect is used.
func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	return p.sizePool(rect.Size()).Get().(*image.RGBA)
}

// Put keeps img for reuse. Sub-images and images of a size never requested
// through Get are dropped.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil || img.Rect.Min != (image.Point{}) || img.Stride != 4*img.Rect.Dx() {
		return
	}
	if sp, ok := p.bySize.Load(img.Rect.Size()); ok {
		sp.(*sync.Pool).Put(img)
	}
}

// Allocated is the number of buffers created because none was free
func (p *ImagePool) Allocated() int64 {
	return p.allocated.Load()
}
