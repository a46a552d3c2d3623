package fractal

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Calibration is the per-render color correction applied to every palette
// color. All fields are multipliers except HueShift, which is a rotation in
// turns (1.0 is a full circle).
type Calibration struct {
	Brightness float64
	Contrast   float64
	Saturation float64
	Gamma      float64
	HueShift   float64
}

// IdentityCalibration leaves colors unchanged, up to 8-bit rounding.
var IdentityCalibration = Calibration{
	Brightness: 1,
	Contrast:   1,
	Saturation: 1,
	Gamma:      1,
}

// Calibrate corrects a color given as 0..255 floats and quantizes it.
// Steps run in a fixed order: hue shift, saturation and brightness in HSV,
// then contrast and gamma per RGB channel.
func Calibrate(r, g, b float64, c Calibration) RGB {
	h, s, v := colorful.Color{R: r / 255, G: g / 255, B: b / 255}.Hsv()
	h = wrap01(h/360 + c.HueShift)
	s = clamp01(s * c.Saturation)
	v = clamp01(v * c.Brightness)
	col := hsv(h, s, v)
	return RGB{
		R: c.channel(col.R),
		G: c.channel(col.G),
		B: c.channel(col.B),
	}
}

// Apply calibrates an 8-bit color.
func (c Calibration) Apply(in RGB) RGB {
	return Calibrate(float64(in.R), float64(in.G), float64(in.B), c)
}

func (c Calibration) channel(x float64) uint8 {
	x = (x-0.5)*c.Contrast + 0.5
	x = math.Pow(max(0, x), c.Gamma)
	return toByte(x * 255)
}

// hsv converts a hue in turns plus saturation and value in [0,1] to RGB in
// [0,1]. The hue is wrapped first so 1.0 maps to red, not to zero.
func hsv(h, s, v float64) colorful.Color {
	return colorful.Hsv(wrap01(h)*360, s, v)
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// toByte truncates toward zero and clamps to [0,255]. NaN maps to 0.
func toByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
