package convert

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

var scalers = map[string]draw.Interpolator{
	"nearest":    draw.NearestNeighbor,
	"approx":     draw.ApproxBiLinear,
	"bilinear":   draw.BiLinear,
	"catmullrom": draw.CatmullRom,
}

// resize scales img to width x height. A zero dimension takes the source
// size for that side.
//
// With crop the source is cut to the target aspect ratio and the result fills
// the whole box. Otherwise the image keeps its aspect ratio: with a fill color
// it is centered on a box-sized background, without one the box shrinks to
// fit the image.
func resize(logger *slog.Logger, img image.Image, width, height int, scaler draw.Scaler, crop bool, fillColor color.Color) image.Image {
	srcBounds := img.Bounds()
	srcSize := srcBounds.Size()
	if srcBounds.Empty() {
		return img
	}
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	destWidth := float64(width)
	if destWidth == 0 {
		destWidth = srcWidth
	}

	destHeight := float64(height)
	if destHeight == 0 {
		destHeight = srcHeight
	}

	srcAR := srcWidth / srcHeight
	destAR := destWidth / destHeight

	var destBounds image.Rectangle
	switch {
	case crop:
		if srcAR < destAR {
			dh := int(math.Round((srcHeight - srcWidth/destAR) / 2))
			srcBounds.Min.Y += dh
			srcBounds.Max.Y -= dh
		} else if srcAR > destAR {
			dw := int(math.Round((srcWidth - srcHeight*destAR) / 2))
			srcBounds.Min.X += dw
			srcBounds.Max.X -= dw
		}
		destBounds = image.Rect(0, 0, int(destWidth), int(destHeight))
	case fillColor != nil:
		destBounds = image.Rect(0, 0, int(destWidth), int(destHeight))
		if srcAR < destAR {
			inset := int(math.Round((destWidth - destHeight*srcAR) / 2))
			destBounds.Min.X += inset
			destBounds.Max.X -= inset
		} else if srcAR > destAR {
			inset := int(math.Round((destHeight - destWidth/srcAR) / 2))
			destBounds.Min.Y += inset
			destBounds.Max.Y -= inset
		}
	default:
		if srcAR < destAR {
			destWidth = max(math.Round(destHeight*srcAR), 1)
		} else if srcAR > destAR {
			destHeight = max(math.Round(destWidth/srcAR), 1)
		}
		destBounds = image.Rect(0, 0, int(destWidth), int(destHeight))
	}

	destSize := image.Rect(0, 0, int(destWidth), int(destHeight))
	if destSize.Size() == srcSize && destBounds == destSize {
		return img
	}

	logger.Info("resizing", "width", destSize.Dx(), "height", destSize.Dy(), "crop", crop)
	dest := image.NewNRGBA(destSize)
	if fillColor != nil && destBounds != destSize {
		draw.Draw(dest, destSize, image.NewUniform(fillColor), image.Point{}, draw.Src)
	}
	scaler.Scale(dest, destBounds, img, srcBounds, draw.Src, nil)

	return dest
}

// parseFillColor reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func parseFillColor(s string) (color.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return nil, fmt.Errorf("invalid fill color %q, should start with #", s)
	}

	var short bool
	switch len(hex) {
	case 3, 4:
		short = true
	case 6, 8:
	default:
		return nil, fmt.Errorf("invalid fill color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("could not read fill color %q: %w", s, err)
	}

	digits := len(hex)
	if digits == 3 || digits == 6 {
		// opaque
		if short {
			v = v<<4 | 0xf
		} else {
			v = v<<8 | 0xff
		}
	}

	if short {
		c := color.NRGBA{
			R: uint8(v>>12) & 0xf,
			G: uint8(v>>8) & 0xf,
			B: uint8(v>>4) & 0xf,
			A: uint8(v) & 0xf,
		}
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
		return c, nil
	}

	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
