package fractal

import "math"

// Filter is a whole-image effect applied after rendering.
type Filter interface {
	// Apply writes the filtered src into dst. Both rasters have the same
	// size and never alias.
	Apply(src, dst *Raster)
}

// --- ColorMatrixFilter ---

// ColorMatrixFilter applies a 4x5 color matrix to every pixel, with channels
// scaled to [0,1]. The matrix is stored in row-major order:
// [R_r, R_g, R_b, R_a, R_offset, G_r, ...]. Rasters are opaque, so the alpha
// input is always 1 and the alpha row is ignored.
type ColorMatrixFilter struct {
	Matrix [20]float64
}

// NewColorMatrixFilter creates a color matrix filter initialized to the identity.
func NewColorMatrixFilter() *ColorMatrixFilter {
	f := &ColorMatrixFilter{}
	f.Matrix[0] = 1  // R_r
	f.Matrix[6] = 1  // G_g
	f.Matrix[12] = 1 // B_b
	f.Matrix[18] = 1 // A_a
	return f
}

// SetSaturation blends each pixel with its luma. s=1 is normal, 0=grayscale,
// >1 oversaturates.
func (f *ColorMatrixFilter) SetSaturation(s float64) {
	sr := (1 - s) * 0.299
	sg := (1 - s) * 0.587
	sb := (1 - s) * 0.114
	f.Matrix = [20]float64{
		sr + s, sg, sb, 0, 0,
		sr, sg + s, sb, 0, 0,
		sr, sg, sb + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Apply transforms every pixel of src into dst.
func (f *ColorMatrixFilter) Apply(src, dst *Raster) {
	m := &f.Matrix
	for i := 0; i+2 < len(src.Pix) && i+2 < len(dst.Pix); i += 3 {
		r := float64(src.Pix[i]) / 255
		g := float64(src.Pix[i+1]) / 255
		b := float64(src.Pix[i+2]) / 255
		dst.Pix[i] = unitByte(m[0]*r + m[1]*g + m[2]*b + m[3] + m[4])
		dst.Pix[i+1] = unitByte(m[5]*r + m[6]*g + m[7]*b + m[8] + m[9])
		dst.Pix[i+2] = unitByte(m[10]*r + m[11]*g + m[12]*b + m[13] + m[14])
	}
}

// unitByte rounds a [0,1] channel to 8 bits, clamping out-of-range values.
func unitByte(v float64) uint8 {
	return toByte(clamp01(v)*255 + 0.5)
}

// --- PixelateFilter ---

// PixelateFilter replaces each Block x Block cell with its top-left pixel.
type PixelateFilter struct {
	Block int
}

// NewPixelateFilter creates a pixelate filter. Block sizes below 1 act as 1.
func NewPixelateFilter(block int) *PixelateFilter {
	return &PixelateFilter{Block: max(block, 1)}
}

// Apply copies src into dst one cell at a time.
func (f *PixelateFilter) Apply(src, dst *Raster) {
	block := max(f.Block, 1)
	for y0 := 0; y0 < src.Height; y0 += block {
		for x0 := 0; x0 < src.Width; x0 += block {
			c := src.RGBAt(x0, y0)
			for y := y0; y < min(y0+block, src.Height); y++ {
				for x := x0; x < min(x0+block, src.Width); x++ {
					dst.Set(x, y, c)
				}
			}
		}
	}
}

// --- PaletteFilter ---

// PaletteFilter remaps pixel colors through a 256-entry palette based on
// luminance. CycleOffset rotates the lookup for palette animation.
type PaletteFilter struct {
	Palette     [256]RGB
	CycleOffset float64
}

// NewPaletteFilter creates a palette filter with a grayscale palette.
func NewPaletteFilter() *PaletteFilter {
	f := &PaletteFilter{}
	for i := range f.Palette {
		v := uint8(i)
		f.Palette[i] = RGB{v, v, v}
	}
	return f
}

// SetPalette samples a registered palette at 256 evenly spaced values of t.
func (f *PaletteFilter) SetPalette(p Palette, tone Tone) {
	fn := p.Func()
	for i := range f.Palette {
		f.Palette[i] = fn(float64(i)/256, i, tone)
	}
}

// Apply remaps each pixel by its luma.
func (f *PaletteFilter) Apply(src, dst *Raster) {
	for i := 0; i+2 < len(src.Pix) && i+2 < len(dst.Pix); i += 3 {
		lum := 0.299*float64(src.Pix[i]) + 0.587*float64(src.Pix[i+1]) + 0.114*float64(src.Pix[i+2])
		idx := lum + f.CycleOffset
		idx -= 256 * math.Floor(idx/256)
		c := f.Palette[min(int(idx), 255)]
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = c.R, c.G, c.B
	}
}

// --- Filter application helper ---

// ApplyFilters runs a filter chain on src, ping-ponging between two scratch
// rasters. src is never written; with no filters it is returned as is.
func ApplyFilters(src *Raster, filters ...Filter) *Raster {
	if len(filters) == 0 {
		return src
	}
	current := NewRaster(src.Width, src.Height)
	filters[0].Apply(src, current)
	var scratch *Raster
	for _, f := range filters[1:] {
		if scratch == nil {
			scratch = NewRaster(src.Width, src.Height)
		}
		f.Apply(current, scratch)
		current, scratch = scratch, current
	}
	return current
}
