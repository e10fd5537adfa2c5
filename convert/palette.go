package convert

import (
	"image"
	"image/color"
	"log/slog"

	"img2svg/palette"

	"golang.org/x/image/draw"
)

// repalette maps the colour of every pixel of img onto lab and keeps the
// original alpha. Without dithering the nearest entry in OkLab is used.
func repalette(logger *slog.Logger, img image.Image, lab *palette.Lab, dither bool) *image.NRGBA {
	logger.Info("applying palette", "colors", lab.Len(), "dither", dither)
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())

	src := image.NewNRGBA(dr)
	draw.Draw(src, dr, img, sr.Min, draw.Src)
	alpha := make([]uint8, 0, dr.Dx()*dr.Dy())
	for i := 3; i < len(src.Pix); i += 4 {
		alpha = append(alpha, src.Pix[i])
		src.Pix[i] = 0xff
	}

	dest := image.NewNRGBA(dr)
	if dither {
		_, pal := lab.To(color.NRGBAModel)
		paletted := image.NewPaletted(dr, pal)
		draw.FloydSteinberg.Draw(paletted, dr, src, image.Point{})
		draw.Draw(dest, dr, paletted, image.Point{}, draw.Src)
	} else {
		cache := make(map[color.NRGBA]color.NRGBA)
		for y := range dr.Dy() {
			for x := range dr.Dx() {
				c := src.NRGBAAt(x, y)
				mapped, ok := cache[c]
				if !ok {
					mapped = color.NRGBAModel.Convert(lab.Convert(c)).(color.NRGBA)
					cache[c] = mapped
				}
				dest.SetNRGBA(x, y, mapped)
			}
		}
	}

	for i, a := range alpha {
		dest.Pix[i*4+3] = a
	}
	return dest
}
