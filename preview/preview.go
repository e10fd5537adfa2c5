// Package preview rasterises rectangle lists so a conversion can be checked
// without an SVG viewer.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/gogpu/gg"

	"img2svg/rectenc"
)

// Render draws rects on a transparent canvas of the given size, the way an
// SVG viewer would paint the converted document.
func Render(width, height int, rects []rectenc.Rect) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rectangle{}), nil
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()

	for i, r := range rects {
		alpha := 1.0
		if r.FillOpacity != 0 {
			alpha = r.FillOpacity
		}
		dc.SetRGBA(float64(r.Fill.R)/255, float64(r.Fill.G)/255, float64(r.Fill.B)/255, alpha)
		dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("could not fill rect %d/%d %v: %w", i, len(rects), r, err)
		}
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("could not flush canvas: %w", err)
	}
	return dc.Image(), nil
}

// SavePNG encodes img as PNG into w.
func SavePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{
		CompressionLevel: png.BestCompression,
		BufferPool:       pngPool,
	}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("could not encode PNG preview: %w", err)
	}
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
