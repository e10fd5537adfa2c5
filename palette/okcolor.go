package palette

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"img2svg/okcolor"
)

// Lab matches colours against a palette by distance in OkLab space. It is a
// color.Model whose Convert returns the nearest palette entry.
type Lab struct {
	colors color.Palette
	labs   []okcolor.Lab
}

var (
	_ PaletteRIFFReaderWriter = &Lab{}
	_ PaletteConverter        = &Lab{}
	_ color.Model             = &Lab{}
)

func NewLabPalette(p color.Palette) *Lab {
	pal := &Lab{}
	pal.From(p)
	return pal
}

func (p *Lab) Len() int {
	return len(p.colors)
}

func (p *Lab) Convert(c color.Color) color.Color {
	if len(p.colors) == 0 {
		return nil
	}
	return p.colors[p.Index(c)]
}

func (p *Lab) Index(c color.Color) int {
	lc := okcolor.LabModel.Convert(c).(okcolor.Lab)

	ret, bestSum := 0, math.MaxFloat64
	for i, v := range p.labs {
		sum := okcolor.DistanceSq(lc, v)
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

func (p *Lab) From(pal color.Palette) int64 {
	for _, col := range pal {
		p.colors = append(p.colors, col)
		p.labs = append(p.labs, okcolor.LabModel.Convert(col).(okcolor.Lab))
	}

	return int64(len(pal))
}

func (p *Lab) To(m color.Model) (int64, color.Palette) {
	pal := make(color.Palette, len(p.colors))
	for i, col := range p.colors {
		pal[i] = m.Convert(col)
	}

	return int64(len(pal)), pal
}

func (p *Lab) ReadRIFF(r io.Reader) (int64, error) {
	pals, err := ReadFrom(r)
	if err != nil {
		return 0, fmt.Errorf("could not load palettes: %w", err)
	}

	var n int64
	for _, pal := range pals {
		n += p.From(pal)
	}

	return n, nil
}

func (p *Lab) WriteRIFF(w io.Writer) (int64, error) {
	if n, err := WriteTo(w, []color.Palette{p.colors}); err != nil {
		return n, fmt.Errorf("could not save palette: %w", err)
	} else {
		return n, nil
	}
}
