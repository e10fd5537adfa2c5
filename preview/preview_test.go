package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"img2svg/pixel"
	"img2svg/rectenc"
)

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -3 && d <= 3
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestRender(t *testing.T) {
	rects := []rectenc.Rect{
		{X: 0, Y: 0, Width: 2, Height: 3, Fill: pixel.Color{R: 255, A: 255}},
		{X: 2, Y: 0, Width: 1, Height: 3, Fill: pixel.Color{B: 255, A: 64}, FillOpacity: 0.5},
	}

	img, err := Render(6, 3, rects)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 6, 3) {
		t.Fatalf("Bounds() = %v, want 6x3", got)
	}

	if c := rgbaAt(img, 0, 1); !near(c.R, 255) || !near(c.G, 0) || !near(c.A, 255) {
		t.Errorf("opaque pixel = %v, want red", c)
	}
	if c := rgbaAt(img, 2, 1); !near(c.A, 128) || !near(c.R, 0) {
		t.Errorf("translucent pixel = %v, want half-covered blue", c)
	}
	if c := rgbaAt(img, 5, 1); c.A != 0 {
		t.Errorf("uncovered pixel = %v, want transparent", c)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	g := pixel.NewGrid(4, 4)
	for y := range 4 {
		for x := range 4 {
			g.Set(x, y, pixel.Color{R: uint8(60 * x), G: uint8(60 * y), B: 100, A: 255})
		}
	}
	rects, err := rectenc.Encode(g, 0)
	if err != nil {
		t.Fatal(err)
	}

	img, err := Render(g.Width(), g.Height(), rects)
	if err != nil {
		t.Fatal(err)
	}
	for y := range 4 {
		for x := range 4 {
			want := g.Sample(x, y)
			got := rgbaAt(img, x, y)
			if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, 255) {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	img, err := Render(0, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !img.Bounds().Empty() {
		t.Errorf("Bounds() = %v, want empty", img.Bounds())
	}
}

func TestSavePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 7, G: 8, B: 9, A: 255})

	var buf bytes.Buffer
	if err := SavePNG(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding preview: %v", err)
	}
	if got := color.NRGBAModel.Convert(img.At(1, 1)).(color.NRGBA); got != (color.NRGBA{R: 7, G: 8, B: 9, A: 255}) {
		t.Errorf("decoded pixel = %v", got)
	}
}
