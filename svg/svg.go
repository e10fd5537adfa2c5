// Package svg writes rectangle lists as standalone SVG documents.
package svg

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"img2svg/rectenc"
)

const footer = "</svg>\n"

func appendHeader(b []byte, width, height int) []byte {
	w := strconv.Itoa(width)
	h := strconv.Itoa(height)

	b = append(b, `<svg xmlns="http://www.w3.org/2000/svg" width="`...)
	b = append(b, w...)
	b = append(b, `" height="`...)
	b = append(b, h...)
	b = append(b, `" viewBox="0 0 `...)
	b = append(b, w...)
	b = append(b, ' ')
	b = append(b, h...)
	return append(b, "\" shape-rendering=\"crispEdges\">\n"...)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Write writes an SVG document of the given size holding one <rect/> per
// line, in order. It returns the number of bytes written to w.
func Write(w io.Writer, width, height int, rects []rectenc.Rect) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	if _, err := bw.Write(appendHeader(bw.AvailableBuffer(), width, height)); err != nil {
		return cw.n, fmt.Errorf("could not write document header: %w", err)
	}

	for i, r := range rects {
		if _, err := bw.Write(append(r.AppendSVG(bw.AvailableBuffer()), '\n')); err != nil {
			return cw.n, fmt.Errorf("could not write rect %d/%d: %w", i, len(rects), err)
		}
	}

	if _, err := bw.WriteString(footer); err != nil {
		return cw.n, fmt.Errorf("could not write document end: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("could not flush document: %w", err)
	}
	return cw.n, nil
}

// Encode returns the document Write would produce.
func Encode(width, height int, rects []rectenc.Rect) []byte {
	var b bytes.Buffer
	b.Grow(len(appendHeader(nil, width, height)) + rectenc.MarkupSize(rects) + len(footer))
	// bytes.Buffer writes never fail
	_, _ = Write(&b, width, height, rects)
	return b.Bytes()
}
