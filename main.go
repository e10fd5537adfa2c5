package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"img2svg/convert"
	"img2svg/inspect"
	"img2svg/parallel"
	"img2svg/rectenc"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers   int    `help:"Number of images processed in parallel. 0 uses one per CPU" default:"0" env:"IMG2SVG_WORKERS"`
	LogLevel  string `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"IMG2SVG_LOG_LEVEL"`
	LogFormat string `help:"Log format" enum:"text,json" default:"text" env:"IMG2SVG_LOG_FORMAT"`

	Convert convert.CLICmd `cmd:"" help:"Convert every image of a folder into an SVG made of rectangles"`
	Inspect inspect.CLICmd `cmd:"" help:"Report the size of the vertical and horizontal encodings of every image of a folder"`
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("img2svg"),
		kong.Description("Converts raster images into SVG documents made of filled rectangles."),
		kong.UsageOnError(),
	)

	logger, err := newLogger(os.Stderr, c.LogLevel, c.LogFormat)
	kctx.FatalIfErrorf(err)
	slog.SetDefault(logger)
	rectenc.SetLogger(logger)

	pool := parallel.Start(c.Workers)
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Workers())

	err = kctx.Run(pool.Do, pool.Wait)
	kctx.FatalIfErrorf(err)
}
