package fractal

import "testing"

// --- ColorMatrixFilter ---

func TestColorMatrixIdentity(t *testing.T) {
	src := gradientRaster(8, 6)
	dst := ApplyFilters(src, NewColorMatrixFilter())
	if !dst.Equal(src) {
		t.Error("identity matrix changed the image")
	}
}

func TestColorMatrixSaturationZero(t *testing.T) {
	f := NewColorMatrixFilter()
	f.SetSaturation(0)
	dst := ApplyFilters(solidRaster(2, 2, RGB{255, 0, 0}), f)
	if got := dst.RGBAt(1, 1); got != (RGB{76, 76, 76}) {
		t.Errorf("grayscale red = %v, want {76 76 76}", got)
	}
}

func TestColorMatrixOffsetClamps(t *testing.T) {
	f := NewColorMatrixFilter()
	f.Matrix[4], f.Matrix[9], f.Matrix[14] = 1, 1, 1
	dst := ApplyFilters(solidRaster(2, 2, RGB{10, 128, 200}), f)
	if got := dst.RGBAt(0, 0); got != (RGB{255, 255, 255}) {
		t.Errorf("offset +1 = %v, want white", got)
	}

	f.Matrix[4], f.Matrix[9], f.Matrix[14] = -1, -1, -1
	dst = ApplyFilters(solidRaster(2, 2, RGB{10, 128, 200}), f)
	if got := dst.RGBAt(0, 0); got != Black {
		t.Errorf("offset -1 = %v, want black", got)
	}
}

func TestColorMatrixRounds(t *testing.T) {
	f := NewColorMatrixFilter()
	f.Matrix[0], f.Matrix[6], f.Matrix[12] = 0.3, 0.3, 0.3
	dst := ApplyFilters(solidRaster(1, 1, RGB{202, 101, 0}), f)
	// 60.6 rounds up, 30.3 down.
	if got := dst.RGBAt(0, 0); got != (RGB{61, 30, 0}) {
		t.Errorf("scale 0.3 = %v, want {61 30 0}", got)
	}
}

func TestColorMatrixSaturationKeepsGray(t *testing.T) {
	f := NewColorMatrixFilter()
	f.SetSaturation(1.8)
	dst := ApplyFilters(solidRaster(1, 1, RGB{90, 90, 90}), f)
	if got := dst.RGBAt(0, 0); absDiff(got.R, 90) > 1 || got.R != got.G || got.G != got.B {
		t.Errorf("oversaturated gray = %v, want {90 90 90}", got)
	}
}

// --- PixelateFilter ---

func TestPixelateCopiesCellOrigin(t *testing.T) {
	src := gradientRaster(10, 7)
	dst := ApplyFilters(src, NewPixelateFilter(4))
	for y := 0; y < 7; y++ {
		for x := 0; x < 10; x++ {
			want := src.RGBAt(x/4*4, y/4*4)
			if got := dst.RGBAt(x, y); got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPixelateBlockOneIsIdentity(t *testing.T) {
	src := gradientRaster(5, 5)
	if dst := ApplyFilters(src, NewPixelateFilter(0)); !dst.Equal(src) {
		t.Error("block 0 changed the image")
	}
}

// --- PaletteFilter ---

func TestPaletteFilterCycleOffset(t *testing.T) {
	f := NewPaletteFilter()
	f.CycleOffset = 10
	dst := ApplyFilters(solidRaster(3, 3, Black), f)
	if got := dst.RGBAt(2, 2); got != (RGB{10, 10, 10}) {
		t.Errorf("black cycled by 10 = %v, want {10 10 10}", got)
	}

	f.CycleOffset = -1
	dst = ApplyFilters(solidRaster(1, 1, Black), f)
	if got := dst.RGBAt(0, 0); got != (RGB{255, 255, 255}) {
		t.Errorf("black cycled by -1 = %v, want wrap to white", got)
	}
}

func TestPaletteFilterSetPalette(t *testing.T) {
	f := NewPaletteFilter()
	f.SetPalette(PaletteRainbow, identityTone())
	if f.Palette[0] != (RGB{255, 0, 0}) {
		t.Errorf("Palette[0] = %v, want red", f.Palette[0])
	}
	dst := ApplyFilters(solidRaster(1, 1, Black), f)
	if got := dst.RGBAt(0, 0); got != f.Palette[0] {
		t.Errorf("black remapped = %v, want %v", got, f.Palette[0])
	}
}

// --- ApplyFilters ---

func TestApplyFiltersLeavesSourceAlone(t *testing.T) {
	src := gradientRaster(6, 6)
	orig := src.Clone()
	sat := NewColorMatrixFilter()
	sat.SetSaturation(0)
	out := ApplyFilters(src, sat, NewPixelateFilter(2), NewPaletteFilter())
	if !src.Equal(orig) {
		t.Error("filter chain modified its source")
	}
	if out == src {
		t.Error("filter chain returned its source")
	}
}

func TestApplyFiltersEmptyChain(t *testing.T) {
	src := gradientRaster(2, 2)
	if out := ApplyFilters(src); out != src {
		t.Error("empty chain should return src")
	}
}

func TestApplyFiltersChainOrder(t *testing.T) {
	gray := NewColorMatrixFilter()
	gray.SetSaturation(0)
	rainbow := NewPaletteFilter()
	rainbow.SetPalette(PaletteRainbow, identityTone())
	src := solidRaster(2, 2, Black)

	if got := ApplyFilters(src, gray, rainbow).RGBAt(1, 1); got != (RGB{255, 0, 0}) {
		t.Errorf("gray then rainbow = %v, want red", got)
	}
	if got := ApplyFilters(src, rainbow, gray).RGBAt(1, 1); got != (RGB{76, 76, 76}) {
		t.Errorf("rainbow then gray = %v, want {76 76 76}", got)
	}
}
