package svg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"img2svg/pixel"
	"img2svg/rectenc"
)

func TestEncode(t *testing.T) {
	g := pixel.NewGrid(1, 3)
	g.Set(0, 0, pixel.Color{R: 0, G: 0, B: 0, A: 255})
	g.Set(0, 1, pixel.Color{R: 0, G: 0, B: 0, A: 255})
	g.Set(0, 2, pixel.Color{R: 255, G: 255, B: 255, A: 64})

	rects, err := rectenc.Encode(g, 0)
	if err != nil {
		t.Fatal(err)
	}

	got := string(Encode(g.Width(), g.Height(), rects))
	want := `<svg xmlns="http://www.w3.org/2000/svg" width="1" height="3" viewBox="0 0 1 3" shape-rendering="crispEdges">
<rect x="0" y="0" width="1" height="2" fill="rgb(0,0,0)"/>
<rect x="0" y="2" width="1" height="1" fill="rgb(255,255,255)" fill-opacity="0.5"/>
</svg>
`
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	got := string(Encode(0, 0, nil))
	want := "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"0\" height=\"0\" viewBox=\"0 0 0 0\" shape-rendering=\"crispEdges\">\n</svg>\n"
	if got != want {
		t.Errorf("Encode(empty) = %q, want %q", got, want)
	}
}

func TestWriteCount(t *testing.T) {
	rects := make([]rectenc.Rect, 2000)
	for i := range rects {
		rects[i] = rectenc.Rect{X: i, Width: 1, Height: 1, Fill: pixel.Color{R: uint8(i), A: 255}}
	}

	var buf bytes.Buffer
	n, err := Write(&buf, 2000, 1, rects)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("Write() = %d bytes, buffer holds %d", n, buf.Len())
	}
	if got := strings.Count(buf.String(), "<rect "); got != len(rects) {
		t.Errorf("document holds %d rects, want %d", got, len(rects))
	}
	if !bytes.Equal(buf.Bytes(), Encode(2000, 1, rects)) {
		t.Error("Write and Encode disagree")
	}
}

type failWriter struct{ after int }

var errFull = errors.New("full")

func (f *failWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errFull
	}
	n := min(len(p), f.after)
	f.after -= n
	if n < len(p) {
		return n, errFull
	}
	return n, nil
}

func TestWriteError(t *testing.T) {
	rects := make([]rectenc.Rect, 500)
	for i := range rects {
		rects[i] = rectenc.Rect{Y: i, Width: 1, Height: 1}
	}

	n, err := Write(&failWriter{after: 100}, 1, 500, rects)
	if !errors.Is(err, errFull) {
		t.Errorf("Write() error = %v, want %v", err, errFull)
	}
	if n != 100 {
		t.Errorf("Write() = %d bytes, want 100", n)
	}
}
