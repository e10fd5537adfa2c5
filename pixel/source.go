package pixel

import (
	"image"

	"golang.org/x/image/draw"
)

// Source is random-access RGBA sampling over a fixed-size grid. Sample is
// only defined for 0 <= x < Width() and 0 <= y < Height().
type Source interface {
	Width() int
	Height() int
	Sample(x, y int) Color
}

var _ Source = &Grid{}

type Grid struct {
	// Pix holds the samples in R, G, B, A order. The sample at (x, y) starts
	// at Pix[y*Stride + x*4].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent samples.
	Stride int
	W      int
	H      int
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Pix:    make([]uint8, width*height*4),
		Stride: 4 * width,
		W:      width,
		H:      height,
	}
}

func (g *Grid) Width() int  { return g.W }
func (g *Grid) Height() int { return g.H }

func (g *Grid) Sample(x, y int) Color {
	i := y*g.Stride + x*4
	s := g.Pix[i : i+4 : i+4]
	return Color{R: s[0], G: s[1], B: s[2], A: s[3]}
}

func (g *Grid) Set(x, y int, c Color) {
	i := y*g.Stride + x*4
	s := g.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
}

// FromImage copies img into a Grid of non-premultiplied samples. The grid
// origin is the top-left corner of img.Bounds().
func FromImage(img image.Image) *Grid {
	b := img.Bounds()

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
		b = nrgba.Bounds()
	}

	g := NewGrid(b.Dx(), b.Dy())
	for y := range g.H {
		src := nrgba.Pix[nrgba.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(g.Pix[y*g.Stride:(y+1)*g.Stride], src[:g.Stride])
	}
	return g
}
