package convert

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"img2svg/palette"
	"img2svg/parallel"
	"img2svg/pixel"
	"img2svg/preview"
	"img2svg/rectenc"
	"img2svg/svg"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan      string        `help:"Source folder to scan" default:"."`
	Dest      string        `help:"Destination folder for SVG files. Relative to scan dir if not absolute." default:"svg"`
	Threshold float64       `help:"Largest RGB distance between a run's first pixel and the pixels merged into it" default:"0" env:"IMG2SVG_THRESHOLD"`
	Resize    bool          `help:"Resize image before converting" default:"false" group:"resize"`
	Width     int           `help:"Max width" group:"resize"`
	Height    int           `help:"Max height" group:"resize"`
	Crop      bool          `help:"Crop to the target aspect ratio instead of fitting" default:"false" group:"resize"`
	Fill      string        `help:"Background color (#RGB, #RGBA, #RRGGBB, #RRGGBBAA) around a fitted image; the output keeps the full size" group:"resize"`
	Scaler    string        `help:"Resampling used when resizing" enum:"nearest,approx,bilinear,catmullrom" default:"nearest" group:"resize"`
	Palette   string        `help:"Palette name (bw, spectra6, gray16, vga16, websafe, plan9) or PAL file in RIFF format to reduce colors to" group:"palette"`
	Dither    bool          `help:"Apply dithering" default:"false" group:"palette"`
	SavePal   bool          `name:"save-palette" help:"Also write the palette used as palette.pal in the destination folder" default:"false" group:"palette"`
	Preview   bool          `help:"Also write a PNG rendering of each SVG" default:"false"`
	Force     bool          `help:"Overwrite existing destination files" default:"false"`
	Lab       *palette.Lab  `kong:"-"`
	FillColor color.Color   `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}
	c.Dest = filepath.Clean(c.Dest)

	if err := rectenc.CheckThreshold(c.Threshold); err != nil {
		return err
	}

	if c.Resize {
		switch {
		case (c.Width < 0):
			return fmt.Errorf("invalid resize width: %d", c.Width)
		case (c.Height < 0):
			return fmt.Errorf("invalid resize height: %d", c.Height)
		case (c.Width == 0) && (c.Height == 0):
			return fmt.Errorf("no resize dimensions given")
		}

		if c.Fill != "" {
			if c.FillColor, err = parseFillColor(c.Fill); err != nil {
				return err
			}
		}
	}

	if _, ok := scalers[c.Scaler]; !ok {
		return fmt.Errorf("unsupported scaler: %s", c.Scaler)
	}

	if c.Palette != "" {
		if c.Lab, err = palette.LoadPalette(c.Palette); err != nil {
			return err
		}
	} else if c.SavePal {
		return fmt.Errorf("no palette to save")
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	if c.SavePal {
		err := save(c.Dest, paletteFile, c.Force, func(w io.Writer) error {
			_, err := c.Lab.WriteRIFF(w)
			return err
		})
		if err != nil {
			return fmt.Errorf("could not save palette: %w", err)
		}
		slog.Info("saved palette", "file", filepath.Join(c.Dest, paletteFile), "colors", c.Lab.Len())
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}
	inPlace := c.Dest == c.Scan

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if !file.Type().IsRegular() {
			continue
		}
		if inPlace && isOutput(file.Name()) {
			slog.Debug("skipping output file", "file", file.Name())
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				if err := c.convert(logger, filePath, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not convert image", "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

const paletteFile = "palette.pal"

// isOutput reports whether name looks like a file written by convert.
func isOutput(name string) bool {
	return name == paletteFile ||
		strings.HasSuffix(name, ".svg") ||
		strings.HasSuffix(name, ".preview.png") ||
		strings.HasSuffix(name, ".tmp")
}

func (c *CLICmd) convert(logger *slog.Logger, filePath, fileName string) error {
	img, imgType, err := DecodeFile(filePath)
	if err != nil {
		return err
	}
	logger = logger.With("type", imgType)

	if c.Resize {
		img = resize(logger, img, c.Width, c.Height, scalers[c.Scaler], c.Crop, c.FillColor)
	}

	if c.Lab != nil {
		img = repalette(logger.With("palette", c.Palette), img, c.Lab, c.Dither)
	}

	grid := pixel.FromImage(img)
	rects, err := rectenc.Encode(grid, c.Threshold)
	if err != nil {
		return fmt.Errorf("could not encode image: %w", err)
	}

	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	var size int64
	err = save(c.Dest, stem+".svg", c.Force, func(w io.Writer) error {
		n, err := svg.Write(w, grid.Width(), grid.Height(), rects)
		size = n
		return err
	})
	if err != nil {
		return err
	}
	logger.Info("converted", "width", grid.Width(), "height", grid.Height(), "rects", len(rects), "bytes", size)

	if !c.Preview {
		return nil
	}

	rendered, err := preview.Render(grid.Width(), grid.Height(), rects)
	if err != nil {
		return fmt.Errorf("could not render preview: %w", err)
	}
	return save(c.Dest, stem+".preview.png", c.Force, func(w io.Writer) error {
		return preview.SavePNG(w, rendered)
	})
}
