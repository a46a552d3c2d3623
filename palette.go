package fractal

import (
	"math"
	"math/rand/v2"
)

// Tone carries the per-render inputs every palette needs besides t.
type Tone struct {
	// Intensity scales the raw palette color before calibration.
	Intensity float64
	Calibration
	// Seed selects the color table of the "random" palette.
	Seed uint64
}

// PaletteFunc maps a normalized escape value t in [0,1) to a color. iterations
// is the raw escape step; only seeded palettes read it.
type PaletteFunc func(t float64, iterations int, tone Tone) RGB

// Palette is a handle into the palette registry.
type Palette int

const (
	PaletteRainbow Palette = iota
	PaletteFire
	PaletteCrystal
	PaletteMembrane
	PaletteVertex
	PaletteRay
	PaletteWave
	PaletteNature
	PaletteTecnomagia
	PalettePlasma
	PaletteCyberpunk

	// Direct RGB polynomial palettes.
	PaletteDefault
	PaletteBlue
	PaletteRed
	PaletteGreen
	PaletteMonochrome
	PaletteIce
	PaletteCosmic
	PaletteRandom
)

var palettes = newRegistry("palette", []entry[PaletteFunc]{
	{"rainbow", rainbowPalette},
	{"fire", firePalette},
	{"crystal", crystalPalette},
	{"membrane", membranePalette},
	{"vertex", vertexPalette},
	{"ray", rayPalette},
	{"wave", wavePalette},
	{"nature", naturePalette},
	{"tecnomagia", tecnomagiaPalette},
	{"plasma", plasmaPalette},
	{"cyberpunk", cyberpunkPalette},
	{"default", defaultPalette},
	{"blue", bluePalette},
	{"red", redPalette},
	{"green", greenPalette},
	{"monochrome", monochromePalette},
	{"ice", icePalette},
	{"cosmic", cosmicPalette},
	{"random", randomPalette},
})

// PaletteTypes lists the registered palette names in registration order.
func PaletteTypes() []string { return palettes.list() }

// ParsePalette resolves name, falling back to PaletteRainbow.
func ParsePalette(name string) Palette { return Palette(palettes.parse(name)) }

// RegisterPalette adds a palette under name.
func RegisterPalette(name string, fn PaletteFunc) (Palette, error) {
	id, err := palettes.register(name, fn)
	return Palette(id), err
}

// Func returns the palette function for p, or rainbow for an unknown handle.
func (p Palette) Func() PaletteFunc { return palettes.lookup(int(p)) }

func (p Palette) String() string { return palettes.name(int(p)) }

func (p Palette) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Palette) UnmarshalText(b []byte) error {
	*p = ParsePalette(string(b))
	return nil
}

// shade converts an HSV curve sample to a calibrated color. s and v are
// clamped to [0,1] and h is taken mod 1.
func shade(h, s, v float64, tone Tone) RGB {
	c := hsv(h, clamp01(s), clamp01(v))
	k := 255 * tone.Intensity
	return Calibrate(c.R*k, c.G*k, c.B*k, tone.Calibration)
}

// direct quantizes unit-scale channels the way the polynomial palettes
// always have: scale, truncate, clamp to 8 bits, then calibrate.
func direct(r, g, b float64, tone Tone) RGB {
	k := 255 * tone.Intensity
	return raw(r*k, g*k, b*k, tone)
}

func raw(r, g, b float64, tone Tone) RGB {
	return Calibrate(float64(toByte(r)), float64(toByte(g)), float64(toByte(b)), tone.Calibration)
}

func sinPi(k, t float64) float64 { return math.Sin(k * math.Pi * t) }
func cosPi(k, t float64) float64 { return math.Cos(k * math.Pi * t) }

func rainbowPalette(t float64, _ int, tone Tone) RGB {
	return shade(t, 1, 1, tone)
}

// firePalette runs dark red to yellow; above t=0.85 a spark term pushes
// toward white.
func firePalette(t float64, _ int, tone Tone) RGB {
	var spark float64
	if t > 0.85 {
		spark = min(1, (t-0.85)*8)
	}
	h := 0.04 + 0.12*(1-t)
	s := 0.8 + 0.2*(1-t) + 0.2*spark
	v := 0.4 + 0.6*t + 0.5*spark
	h += 0.01 * sinPi(12, t)
	s = min(1, s+0.1*sinPi(8, t))
	v = min(1, v+0.1*cosPi(10, t))
	return shade(h, s, v, tone)
}

func crystalPalette(t float64, _ int, tone Tone) RGB {
	return shade(
		0.55+0.15*sinPi(8, t),
		0.3+0.7*math.Abs(cosPi(4, t)),
		0.85+0.15*math.Abs(sinPi(6, t)),
		tone)
}

func membranePalette(t float64, _ int, tone Tone) RGB {
	return shade(
		0.45+0.15*sinPi(4, t),
		0.6+0.3*cosPi(6, t),
		0.7+0.2*sinPi(8, t),
		tone)
}

// vertexPalette jumps hue, saturation and value on every odd sixth of t.
func vertexPalette(t float64, _ int, tone Tone) RGB {
	facet := float64(int(t*6) % 2)
	h := 0.3 + 0.25*math.Sin(10*math.Pi*t+facet*math.Pi)
	s := 0.6 + 0.4*math.Abs(sinPi(7, t))
	v := 0.5 + 0.5*math.Abs(math.Cos(9*math.Pi*t+facet*math.Pi/2))
	if facet == 1 {
		h += 0.15
		s = min(1, s+0.2)
		v = min(1, v+0.2)
	}
	return shade(h, s, v, tone)
}

// rayPalette alternates yellow, magenta and blue bands.
func rayPalette(t float64, _ int, tone Tone) RGB {
	switch {
	case t < 0.33:
		return shade(0.15+0.1*sinPi(24, t), 1, 1, tone)
	case t < 0.66:
		return shade(0.83+0.1*cosPi(18, t), 0.9, 0.8+0.2*sinPi(10, t), tone)
	default:
		return shade(0.6+0.1*sinPi(30, t), 0.8+0.2*cosPi(12, t), 0.7+0.3*sinPi(8, t), tone)
	}
}

func wavePalette(t float64, _ int, tone Tone) RGB {
	return shade(
		0.1+0.4*math.Abs(sinPi(2, t)),
		0.4+0.3*sinPi(4, t),
		0.7+0.2*cosPi(6, t),
		tone)
}

func naturePalette(t float64, _ int, tone Tone) RGB {
	return shade(
		0.22+0.15*sinPi(3, t),
		0.7-0.3*math.Abs(cosPi(5, t)),
		0.5+0.4*math.Abs(sinPi(7, t)),
		tone)
}

func tecnomagiaPalette(t float64, _ int, tone Tone) RGB {
	return shade(
		0.5+0.3*sinPi(10, t),
		0.8+0.2*cosPi(12, t),
		0.6+0.3*sinPi(8, t),
		tone)
}

func plasmaPalette(t float64, _ int, tone Tone) RGB {
	return shade(
		0.7+0.3*sinPi(8, t),
		0.8+0.2*cosPi(12, t),
		0.6+0.4*sinPi(10, t),
		tone)
}

// cyberpunkPalette has three flat hue bands: neon blue, magenta, lime.
func cyberpunkPalette(t float64, _ int, tone Tone) RGB {
	switch {
	case t < 0.33:
		return shade(0.55, 1, 0.8+0.2*t, tone)
	case t < 0.66:
		return shade(0.83, 1, 0.7+0.3*(t-0.33), tone)
	default:
		return shade(0.28, 0.9, 0.6+0.4*(t-0.66), tone)
	}
}

func defaultPalette(t float64, _ int, tone Tone) RGB {
	u := 1 - t
	return direct(9*u*t*t*t, 15*u*u*t*t, 8.5*u*u*u*t, tone)
}

func bluePalette(t float64, _ int, tone Tone) RGB {
	u := 1 - t
	return direct(5*u*t, 10*u*u*t, 15*u*t*t, tone)
}

func redPalette(t float64, _ int, tone Tone) RGB {
	u := 1 - t
	return direct(15*u*t*t, 5*u*u*t, 5*u*u*u, tone)
}

func greenPalette(t float64, _ int, tone Tone) RGB {
	u := 1 - t
	return direct(5*u*u*t, 15*u*t*t, 5*u*u, tone)
}

func monochromePalette(t float64, _ int, tone Tone) RGB {
	return direct(t, t, t, tone)
}

func icePalette(t float64, _ int, tone Tone) RGB {
	return direct(0.7*(1-t), 1.2*t, 1.5*t, tone)
}

// cosmicPalette is three phase-shifted sines already in 0..254.
func cosmicPalette(t float64, _ int, tone Tone) RGB {
	k := 127 * tone.Intensity
	return raw(
		k*(1+math.Sin(3*t)),
		k*(1+math.Sin(3*t+2)),
		k*(1+math.Sin(3*t+4)),
		tone)
}

// randomPalette draws one color per iteration count from a generator seeded
// with (Seed, iterations), so equal inputs always give equal colors.
func randomPalette(_ float64, iterations int, tone Tone) RGB {
	rng := rand.New(rand.NewPCG(tone.Seed, uint64(iterations)))
	r := rng.Float64()
	g := rng.Float64()
	b := rng.Float64()
	return direct(r, g, b, tone)
}
