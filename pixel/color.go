package pixel

import (
	"math"
	"strconv"
)

// Color is a non-premultiplied 8-bit RGBA sample.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// Distance is the Euclidean distance between a and b in RGB space. Alpha is
// not part of the metric.
func Distance(a, b Color) float64 {
	dr := float64(b.R) - float64(a.R)
	dg := float64(b.G) - float64(a.G)
	db := float64(b.B) - float64(a.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// WithinThreshold reports whether b is at most threshold away from a. With a
// threshold of 0 only identical RGB triples match.
func WithinThreshold(a, b Color, threshold float64) bool {
	return Distance(a, b) <= threshold
}

// FillString formats the RGB part of c as an SVG/CSS colour, rgb(r,g,b).
func FillString(c Color) string {
	return string(AppendFill(make([]byte, 0, len("rgb(255,255,255)")), c))
}

func AppendFill(b []byte, c Color) []byte {
	b = append(b, "rgb("...)
	b = strconv.AppendUint(b, uint64(c.R), 10)
	b = append(b, ',')
	b = strconv.AppendUint(b, uint64(c.G), 10)
	b = append(b, ',')
	b = strconv.AppendUint(b, uint64(c.B), 10)
	return append(b, ')')
}
