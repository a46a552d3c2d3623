package fractal

import (
	"bytes"
	"image"
	"image/color"
)

// Raster is an opaque RGB image stored row-major, three bytes per pixel.
// It implements image.Image so any standard encoder accepts it.
type Raster struct {
	Width, Height int
	// Stride is the byte distance between vertically adjacent pixels.
	Stride int
	Pix    []uint8
}

// NewRaster allocates a black raster. Negative sizes are treated as zero.
func NewRaster(w, h int) *Raster {
	w, h = max(w, 0), max(h, 0)
	return &Raster{
		Width:  w,
		Height: h,
		Stride: 3 * w,
		Pix:    make([]uint8, 3*w*h),
	}
}

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.Width, r.Height) }

// At implements image.Image.
func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(r.Bounds())) {
		return color.RGBA{}
	}
	c := r.RGBAt(x, y)
	return color.RGBA{c.R, c.G, c.B, 0xff}
}

// RGBAt returns the pixel at (x, y). The coordinates must be in bounds.
func (r *Raster) RGBAt(x, y int) RGB {
	i := y*r.Stride + 3*x
	return RGB{r.Pix[i], r.Pix[i+1], r.Pix[i+2]}
}

// Set stores c at (x, y). The coordinates must be in bounds.
func (r *Raster) Set(x, y int, c RGB) {
	i := y*r.Stride + 3*x
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
}

// Row returns the bytes of row y, aliased to Pix.
func (r *Raster) Row(y int) []uint8 {
	return r.Pix[y*r.Stride : (y+1)*r.Stride]
}

// RGBA converts the raster to a standard image, for encoders and scalers
// that have a fast path for *image.RGBA.
func (r *Raster) RGBA() *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	for y := 0; y < r.Height; y++ {
		src := r.Row(y)
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < r.Width; x++ {
			dst[4*x] = src[3*x]
			dst[4*x+1] = src[3*x+1]
			dst[4*x+2] = src[3*x+2]
			dst[4*x+3] = 0xff
		}
	}
	return img
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	c := *r
	c.Pix = bytes.Clone(r.Pix)
	if c.Pix == nil {
		c.Pix = []uint8{}
	}
	return &c
}

// Equal reports whether r and o have the same size and pixels.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Width == o.Width && r.Height == o.Height && bytes.Equal(r.Pix, o.Pix)
}

// fill sets every pixel to c.
func (r *Raster) fill(c RGB) {
	for i := 0; i+2 < len(r.Pix); i += 3 {
		r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
	}
}

// band is the exclusive view of one raster row handed to a render worker.
type band struct {
	y   int
	pix []uint8
}

func (r *Raster) band(y int) band {
	return band{y: y, pix: r.Row(y)}
}

func (b band) set(x int, c RGB) {
	i := 3 * x
	b.pix[i], b.pix[i+1], b.pix[i+2] = c.R, c.G, c.B
}
