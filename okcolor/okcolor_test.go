package okcolor

import (
	"image/color"
	"math"
	"testing"
)

func TestLabReference(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want Lab
	}{
		{"white", color.White, Lab{L: 1, A: 0, B: 0, Alpha: 0xffff}},
		{"black", color.Black, Lab{L: 0, A: 0, B: 0, Alpha: 0xffff}},
		// https://bottosson.github.io/posts/oklab/ reference value for sRGB red
		{"red", color.NRGBA{R: 255, A: 255}, Lab{L: 0.627955, A: 0.224863, B: 0.125846, Alpha: 0xffff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LabModel.Convert(tt.c).(Lab)
			if math.Abs(got.L-tt.want.L) > 1e-3 || math.Abs(got.A-tt.want.A) > 1e-3 ||
				math.Abs(got.B-tt.want.B) > 1e-3 || got.Alpha != tt.want.Alpha {
				t.Errorf("LabModel.Convert(%v) = %+v, want %+v", tt.c, got, tt.want)
			}
		})
	}
}

func TestLabRoundTrip(t *testing.T) {
	for _, c := range []color.NRGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 12, G: 200, B: 99, A: 255},
		{R: 255, G: 128, B: 1, A: 128},
		{R: 255, G: 255, B: 255, A: 255},
	} {
		lab := LabModel.Convert(c).(Lab)
		got := color.NRGBAModel.Convert(lab).(color.NRGBA)
		for i, pair := range [][2]uint8{{got.R, c.R}, {got.G, c.G}, {got.B, c.B}, {got.A, c.A}} {
			if d := int(pair[0]) - int(pair[1]); d < -1 || d > 1 {
				t.Errorf("round trip of %v = %v (channel %d)", c, got, i)
			}
		}
	}
}

func TestDistanceSq(t *testing.T) {
	white := LabModel.Convert(color.White).(Lab)
	black := LabModel.Convert(color.Black).(Lab)
	grey := LabModel.Convert(color.Gray{Y: 128}).(Lab)

	if d := DistanceSq(white, white); d != 0 {
		t.Errorf("DistanceSq(white, white) = %v, want 0", d)
	}
	if DistanceSq(grey, white) >= DistanceSq(black, white) {
		t.Error("grey should be closer to white than black is")
	}
	if DistanceSq(white, black) != DistanceSq(black, white) {
		t.Error("DistanceSq is not symmetric")
	}
}

func TestLinearClamp(t *testing.T) {
	got := LinearRGBA{R: -0.5, G: 0.25, B: 3, A: 7}.Clamp()
	if want := (LinearRGBA{R: 0, G: 0.25, B: 1, A: 7}); got != want {
		t.Errorf("Clamp() = %+v, want %+v", got, want)
	}
}

func TestLinearRGBAModel(t *testing.T) {
	white := LinearRGBAModel.Convert(color.White).(LinearRGBA)
	if want := (LinearRGBA{R: 1, G: 1, B: 1, A: 0xffff}); white != want {
		t.Errorf("LinearRGBAModel.Convert(white) = %+v, want %+v", white, want)
	}

	mid := LinearRGBAModel.Convert(color.Gray{Y: 128}).(LinearRGBA)
	if math.Abs(mid.R-0.2158605) > 1e-4 {
		t.Errorf("LinearRGBAModel.Convert(gray 128).R = %v, want about 0.2159", mid.R)
	}

	if got := LinearRGBAModel.Convert(mid); got != color.Color(mid) {
		t.Errorf("LinearRGBAModel.Convert(%+v) = %+v, want identity", mid, got)
	}
}
