package fractal

import (
	"context"
	"testing"
)

func identityTone() Tone {
	return Tone{Intensity: 1, Calibration: IdentityCalibration}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestRainbowEndpoints(t *testing.T) {
	got := rainbowPalette(0, 0, identityTone())
	if got != (RGB{255, 0, 0}) {
		t.Errorf("rainbow(0) = %v, want pure red", got)
	}
}

func TestZeroIntensityIsBlack(t *testing.T) {
	tone := identityTone()
	tone.Intensity = 0
	for _, name := range []string{"rainbow", "fire", "crystal", "plasma", "cyberpunk", "default", "monochrome"} {
		fn := ParsePalette(name).Func()
		if got := fn(0.4, 40, tone); got != Black {
			t.Errorf("%s with intensity 0 = %v, want black", name, got)
		}
	}
}

func TestPalettesAreDeterministic(t *testing.T) {
	tone := identityTone()
	tone.Seed = 7
	for _, name := range PaletteTypes() {
		fn := ParsePalette(name).Func()
		for i := 0; i < 100; i++ {
			tt := float64(i) / 100
			if a, b := fn(tt, i, tone), fn(tt, i, tone); a != b {
				t.Errorf("%s(%v) not deterministic: %v vs %v", name, tt, a, b)
			}
		}
	}
}

func TestPalettesHandleOutOfRangeTone(t *testing.T) {
	// Large intensities and calibrations must saturate, not wrap.
	tone := Tone{Intensity: 5, Calibration: Calibration{Brightness: 3, Contrast: 4, Saturation: 2, Gamma: 0.5, HueShift: -0.3}}
	for _, name := range PaletteTypes() {
		fn := ParsePalette(name).Func()
		for i := 0; i < 50; i++ {
			fn(float64(i)/50, i, tone)
		}
	}
}

func TestVertexFacets(t *testing.T) {
	// t in [1/6, 2/6) is an odd facet and gets boosted saturation and value,
	// so it must differ from the color just below the facet edge.
	tone := identityTone()
	below := vertexPalette(1.0/6-1e-6, 0, tone)
	above := vertexPalette(1.0/6+1e-6, 0, tone)
	if below == above {
		t.Errorf("vertex facet edge not visible: %v == %v", below, above)
	}
}

func TestCyberpunkBands(t *testing.T) {
	tone := identityTone()
	blue := cyberpunkPalette(0.1, 0, tone)
	magenta := cyberpunkPalette(0.5, 0, tone)
	lime := cyberpunkPalette(0.9, 0, tone)
	if !(blue.B > blue.R && blue.B > blue.G/2) {
		t.Errorf("cyberpunk low band = %v, want blue dominant", blue)
	}
	if !(magenta.R > magenta.G && magenta.B > magenta.G) {
		t.Errorf("cyberpunk mid band = %v, want magenta", magenta)
	}
	if !(lime.G > lime.R && lime.G > lime.B) {
		t.Errorf("cyberpunk high band = %v, want green dominant", lime)
	}
}

func TestMonochromeIsGray(t *testing.T) {
	got := monochromePalette(0.5, 0, identityTone())
	if got.R != got.G || got.G != got.B {
		t.Errorf("monochrome(0.5) = %v, want gray", got)
	}
	if absDiff(got.R, 127) > 1 {
		t.Errorf("monochrome(0.5) = %v, want about 127", got)
	}
}

func TestCosmicStartColor(t *testing.T) {
	got := cosmicPalette(0, 0, identityTone())
	want := RGB{127, 242, 30}
	if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 || absDiff(got.B, want.B) > 1 {
		t.Errorf("cosmic(0) = %v, want about %v", got, want)
	}
}

func TestRandomPaletteSeeded(t *testing.T) {
	tone := identityTone()
	tone.Seed = 42
	a := randomPalette(0, 17, tone)
	if b := randomPalette(0.9, 17, tone); a != b {
		t.Errorf("random palette depends on t: %v vs %v", a, b)
	}

	distinct := map[RGB]bool{}
	for i := 0; i < 10; i++ {
		distinct[randomPalette(0, i, tone)] = true
	}
	if len(distinct) < 2 {
		t.Error("random palette gives the same color for every iteration count")
	}

	other := tone
	other.Seed = 43
	same := 0
	for i := 0; i < 10; i++ {
		if randomPalette(0, i, tone) == randomPalette(0, i, other) {
			same++
		}
	}
	if same == 10 {
		t.Error("random palette ignores the seed")
	}
}

func TestColorTableInteriorIsBlack(t *testing.T) {
	for _, name := range PaletteTypes() {
		p := DefaultParams()
		p.Palette = ParsePalette(name)
		p.MaxIterations = 20
		table := colorTable(&p)
		if len(table) != 21 {
			t.Fatalf("%s: table length = %d, want 21", name, len(table))
		}
		if table[20] != Black {
			t.Errorf("%s: interior color = %v, want black", name, table[20])
		}
	}
}

func TestRandomPaletteRenderReproducible(t *testing.T) {
	p := DefaultParams()
	p.Width, p.Height = 40, 30
	p.Palette = PaletteRandom
	p.Seed = 99
	a, err := Render(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("random palette renders differ for the same seed")
	}
}
