// Package inspect reports how both scan orientations would encode each image
// of a folder, without writing anything.
package inspect

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"img2svg/convert"
	"img2svg/parallel"
	"img2svg/pixel"
	"img2svg/rectenc"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan      string  `help:"Source folder to scan" default:"."`
	Threshold float64 `help:"Largest RGB distance between a run's first pixel and the pixels merged into it" default:"0" env:"IMG2SVG_THRESHOLD"`
}

// Report describes both encodings of one image.
type Report struct {
	File       string
	Width      int
	Height     int
	Vertical   PassStats
	Horizontal PassStats
}

type PassStats struct {
	Rects int
	Bytes int
}

func (s PassStats) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("rects", s.Rects), slog.Int("bytes", s.Bytes))
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

	return rectenc.CheckThreshold(c.Threshold)
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	_, err := c.Reports(worker, wait)
	return err
}

// Reports inspects every regular file in the scan folder and returns the
// reports of the images that could be encoded, in no particular order.
func (c *CLICmd) Reports(worker parallel.WorkerFunc, wait parallel.WaitFunc) ([]Report, error) {
	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return nil, fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var (
		mu       sync.Mutex
		reports  []Report
		errCount atomic.Uint64
	)
	for _, file := range files {
		if !file.Type().IsRegular() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				r, err := c.inspect(filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not inspect image", "error", err)
					return
				}
				logger.Info("passes", "width", r.Width, "height", r.Height,
					"vertical", r.Vertical, "horizontal", r.Horizontal)

				mu.Lock()
				reports = append(reports, r)
				mu.Unlock()
			}
		}(file.Name()))
	}

	wait(true)

	errors := errCount.Load()
	slog.Info("stats", "inspected", len(reports), "errors", errors)
	if errors > 0 {
		return reports, fmt.Errorf("error processing %d files", errors)
	}
	return reports, nil
}

func (c *CLICmd) inspect(filePath string) (Report, error) {
	img, _, err := convert.DecodeFile(filePath)
	if err != nil {
		return Report{}, err
	}

	grid := pixel.FromImage(img)
	vertical, horizontal, err := rectenc.EncodeBoth(grid, c.Threshold)
	if err != nil {
		return Report{}, fmt.Errorf("could not encode image: %w", err)
	}

	return Report{
		File:       filePath,
		Width:      grid.Width(),
		Height:     grid.Height(),
		Vertical:   PassStats{Rects: len(vertical), Bytes: rectenc.MarkupSize(vertical)},
		Horizontal: PassStats{Rects: len(horizontal), Bytes: rectenc.MarkupSize(horizontal)},
	}, nil
}
