package rectenc

import (
	"strconv"

	"img2svg/pixel"
)

// Rect is a single filled-rectangle drawing instruction.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
	// Fill is the run's anchor sample. Only its RGB channels are drawn.
	Fill pixel.Color
	// FillOpacity is zero for opaque fills, otherwise in (0, 1).
	FillOpacity float64
}

// opacity maps a sample alpha to a fill opacity. Alpha values of 128 and
// above are opaque; below that the mapping is (128-a)/128, so smaller alpha
// gives a higher opacity. Rendered output of existing documents depends on
// this exact mapping.
func opacity(a uint8) float64 {
	if a >= 128 {
		return 0
	}
	return float64(128-int(a)) / 128
}

func newRect(x, y, width, height int, c pixel.Color) Rect {
	return Rect{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Fill:        c,
		FillOpacity: opacity(c.A),
	}
}

// AppendSVG appends the <rect/> element for r to b.
func (r Rect) AppendSVG(b []byte) []byte {
	b = append(b, `<rect x="`...)
	b = strconv.AppendInt(b, int64(r.X), 10)
	b = append(b, `" y="`...)
	b = strconv.AppendInt(b, int64(r.Y), 10)
	b = append(b, `" width="`...)
	b = strconv.AppendInt(b, int64(r.Width), 10)
	b = append(b, `" height="`...)
	b = strconv.AppendInt(b, int64(r.Height), 10)
	b = append(b, `" fill="`...)
	b = pixel.AppendFill(b, r.Fill)
	if r.FillOpacity != 0 {
		b = append(b, `" fill-opacity="`...)
		b = strconv.AppendFloat(b, r.FillOpacity, 'f', -1, 64)
	}
	return append(b, `"/>`...)
}

func (r Rect) String() string {
	return string(r.AppendSVG(nil))
}

// MarkupSize is the length in bytes of the newline-terminated <rect/>
// elements for rects.
func MarkupSize(rects []Rect) int {
	var buf []byte
	n := 0
	for _, r := range rects {
		buf = r.AppendSVG(buf[:0])
		n += len(buf) + 1
	}
	return n
}
