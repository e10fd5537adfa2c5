package palette

import (
	"fmt"
	"image/color"
	stdpalette "image/color/palette"
	"os"
)

var builtin = map[string]color.Palette{
	"bw": {
		color.RGBA{0x00, 0x00, 0x00, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
	},
	"spectra6": {
		color.RGBA{0x00, 0x00, 0x00, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
		color.RGBA{0xff, 0x00, 0x00, 0xff},
		color.RGBA{0xff, 0xff, 0x00, 0xff},
		color.RGBA{0x00, 0x00, 0xff, 0xff},
		color.RGBA{0x00, 0xff, 0x00, 0xff},
	},
	"gray16":  gray16(),
	"vga16":   vga16,
	"websafe": stdpalette.WebSafe,
	"plan9":   stdpalette.Plan9,
}

var vga16 = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0x00, 0xaa, 0xff},
	color.RGBA{0x00, 0xaa, 0x00, 0xff},
	color.RGBA{0x00, 0xaa, 0xaa, 0xff},
	color.RGBA{0xaa, 0x00, 0x00, 0xff},
	color.RGBA{0xaa, 0x00, 0xaa, 0xff},
	color.RGBA{0xaa, 0x55, 0x00, 0xff},
	color.RGBA{0xaa, 0xaa, 0xaa, 0xff},
	color.RGBA{0x55, 0x55, 0x55, 0xff},
	color.RGBA{0x55, 0x55, 0xff, 0xff},
	color.RGBA{0x55, 0xff, 0x55, 0xff},
	color.RGBA{0x55, 0xff, 0xff, 0xff},
	color.RGBA{0xff, 0x55, 0x55, 0xff},
	color.RGBA{0xff, 0x55, 0xff, 0xff},
	color.RGBA{0xff, 0xff, 0x55, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
}

func gray16() color.Palette {
	pal := make(color.Palette, 16)
	for i := range pal {
		pal[i] = color.Gray{Y: uint8(i * 0x11)}
	}
	return pal
}

// LoadPalette returns the builtin palette called name, or reads name as a
// RIFF PAL file. Palettes from files are merged into one.
func LoadPalette(name string) (*Lab, error) {
	if pal, ok := builtin[name]; ok {
		return NewLabPalette(pal), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q: %w", name, err)
	}
	defer f.Close()

	lab := &Lab{}
	n, err := lab.ReadRIFF(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette file %q: %w", name, err)
	}

	switch {
	case n == 0:
		return nil, fmt.Errorf("palette file %q holds no colors", name)
	case n > 256:
		return nil, fmt.Errorf("palette file %q holds %d colors, at most 256 are supported", name, n)
	}
	return lab, nil
}
