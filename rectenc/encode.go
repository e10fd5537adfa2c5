// Package rectenc turns a pixel grid into a list of axis-aligned filled
// rectangles.
//
// Each column (vertical pass) or row (horizontal pass) is split into runs.
// A run starts at an anchor sample and extends while the next sample is
// within the threshold of the anchor. Samples are compared to the anchor and
// never to their neighbour, so a run may hold samples further apart from each
// other than the threshold. Runs whose anchor is fully transparent are
// consumed without producing a rectangle.
package rectenc

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"img2svg/pixel"
)

var ErrInvalidThreshold = errors.New("invalid threshold")

type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// CheckThreshold reports ErrInvalidThreshold for negative or NaN values.
func CheckThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

// Encode returns the vertical pass for src. The horizontal pass is available
// through Pass and EncodeBoth but is never chosen here.
func Encode(src pixel.Source, threshold float64) ([]Rect, error) {
	return Pass(src, threshold, Vertical)
}

// Pass scans src along a single orientation.
func Pass(src pixel.Source, threshold float64, o Orientation) ([]Rect, error) {
	if err := CheckThreshold(threshold); err != nil {
		return nil, err
	}

	var rects []Rect
	switch o {
	case Vertical:
		rects = scanColumns(src, threshold)
	case Horizontal:
		rects = scanRows(src, threshold)
	default:
		return nil, fmt.Errorf("unsupported orientation: %v", o)
	}

	Logger().Debug("pass complete", "orientation", o, "width", src.Width(), "height", src.Height(),
		"threshold", threshold, "rects", len(rects))
	return rects, nil
}

// EncodeBoth runs both passes concurrently over src. src must not change
// while EncodeBoth runs.
func EncodeBoth(src pixel.Source, threshold float64) (vertical, horizontal []Rect, err error) {
	if err := CheckThreshold(threshold); err != nil {
		return nil, nil, err
	}

	var vErr, hErr error
	var wg sync.WaitGroup
	wg.Go(func() {
		vertical, vErr = Pass(src, threshold, Vertical)
	})
	wg.Go(func() {
		horizontal, hErr = Pass(src, threshold, Horizontal)
	})
	wg.Wait()

	if err = errors.Join(vErr, hErr); err != nil {
		return nil, nil, err
	}
	return vertical, horizontal, nil
}

func scanColumns(src pixel.Source, threshold float64) []Rect {
	width, height := src.Width(), src.Height()

	var rects []Rect
	for x := range width {
		for y := 0; y < height; {
			anchor := src.Sample(x, y)
			n := 1
			for y+n < height && pixel.WithinThreshold(anchor, src.Sample(x, y+n), threshold) {
				n++
			}

			if anchor.A > 0 {
				rects = append(rects, newRect(x, y, 1, n, anchor))
			}
			y += n
		}
	}
	return rects
}

func scanRows(src pixel.Source, threshold float64) []Rect {
	width, height := src.Width(), src.Height()

	var rects []Rect
	for y := range height {
		for x := 0; x < width; {
			anchor := src.Sample(x, y)
			n := 1
			for x+n < width && pixel.WithinThreshold(anchor, src.Sample(x+n, y), threshold) {
				n++
			}

			if anchor.A > 0 {
				rects = append(rects, newRect(x, y, n, 1, anchor))
			}
			x += n
		}
	}
	return rects
}
