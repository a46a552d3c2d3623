package fractal

import (
	"math"
	"math/rand/v2"
)

// Effect animations. Each returns a new raster and leaves src untouched.

func colorEffect(src *Raster, i, n int, _ *rand.Rand) *Raster {
	f := NewColorMatrixFilter()
	f.SetSaturation(0.7 + 0.3*math.Sin(phase(i, n)))
	return ApplyFilters(src, f)
}

// crystalEffect pixelates with a block size breathing between 4 and 12.
func crystalEffect(src *Raster, i, n int, _ *rand.Rand) *Raster {
	block := int(4 + 8*math.Abs(math.Sin(phase(i, n))))
	return ApplyFilters(src, NewPixelateFilter(block))
}

// membraneEffect shifts every row along a sine of its height, plus a
// glitch on every 12th row each 8th frame.
func membraneEffect(src *Raster, i, n int, _ *rand.Rand) *Raster {
	out := NewRaster(src.Width, src.Height)
	h := float64(src.Height)
	for y := 0; y < src.Height; y++ {
		off := int(8 * math.Sin(2*math.Pi*float64(y)/h+phase(i, n)))
		off += int(4 * math.Sin(phase(i, n)))
		rollRow(out.Row(y), src.Row(y), off)
	}
	if i%8 == 0 {
		k := int(10 * math.Sin(float64(i)))
		tmp := make([]uint8, out.Stride)
		for y := 0; y < out.Height; y += 12 {
			rollRowInPlace(out.Row(y), tmp, k)
		}
	}
	return out
}

// vertexEffect applies jump cuts (vertical flip, horizontal flip, quarter
// turn) on three different frame periods, and shifts 8-row strips every 6th
// frame. A quarter turn swaps the raster dimensions; strips still start
// below the source height.
func vertexEffect(src *Raster, i, n int, _ *rand.Rand) *Raster {
	out := src.Clone()
	if i%(n/5+1) == 0 {
		flipVertical(out)
	}
	if i%(n/7+1) == 0 {
		flipHorizontal(out)
	}
	if i%(n/9+1) == 0 {
		out = rotate90(out)
	}
	if i%6 == 0 {
		k := int(10 * math.Sin(float64(i)))
		tmp := make([]uint8, out.Stride)
		for y0 := 0; y0 < src.Height; y0 += 32 {
			for y := y0; y < min(y0+8, out.Height); y++ {
				rollRowInPlace(out.Row(y), tmp, k)
			}
		}
	}
	return out
}

var (
	rayBright = RGB{255, 255, 180}
	rayCool   = RGB{200, 200, 255}
	flash     = RGB{255, 255, 255}
)

// rayEffect draws 3 to 5 dashed rays, white flashes on every 5th frame and a
// brightness flicker.
func rayEffect(src *Raster, i, _ int, rng *rand.Rand) *Raster {
	out := src.Clone()
	w, h := out.Width, out.Height
	if w == 0 || h == 0 {
		return out
	}
	fi := float64(i)
	rays := 3 + i%3
	length := int(0.7 * float64(min(w, h)))
	for k := 0; k < rays; k++ {
		angle := 2*math.Pi*float64(k)/float64(rays) + math.Pi*math.Sin(fi/7)
		cx := w/2 + int(float64(w/3)*math.Sin(angle+fi*0.1))
		cy := h/2 + int(float64(h/3)*math.Cos(angle-fi*0.13))
		dx := math.Cos(angle + 0.2*math.Sin(fi/3))
		dy := math.Sin(angle + 0.2*math.Cos(fi/3))
		for l := 0; l < length; l++ {
			x := int(float64(cx) + float64(l)*dx)
			y := int(float64(cy) + float64(l)*dy)
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			if l%7 < 3 {
				out.Set(x, y, rayBright)
			} else {
				out.Set(x, y, rayCool)
			}
		}
	}
	if i%5 == 0 {
		for range 8 {
			fx, fy := rng.IntN(w), rng.IntN(h)
			for y := max(0, fy-2); y < min(h, fy+2); y++ {
				for x := max(0, fx-2); x < min(w, fx+2); x++ {
					out.Set(x, y, flash)
				}
			}
		}
	}
	k := 0.9 + 0.2*math.Sin(fi/2)
	for j, v := range out.Pix {
		out.Pix[j] = toByte(float64(v) * k)
	}
	return out
}

func waveEffect(src *Raster, i, n int, _ *rand.Rand) *Raster {
	return columnWave(src, i, n, 10)
}

func plasmaWaveEffect(src *Raster, i, n int, _ *rand.Rand) *Raster {
	return columnWave(src, i, n, 18)
}

// columnWave shifts every column vertically along a sine of its position.
func columnWave(src *Raster, i, n int, amplitude float64) *Raster {
	out := NewRaster(src.Width, src.Height)
	w := float64(src.Width)
	for x := 0; x < src.Width; x++ {
		off := int(amplitude * math.Sin(2*math.Pi*float64(x)/w+phase(i, n)))
		rollColumn(out, src, x, off)
	}
	return out
}

// natureEffect fades toward black and back while adding gaussian noise that
// grows as the image darkens.
func natureEffect(src *Raster, i, n int, rng *rand.Rand) *Raster {
	out := NewRaster(src.Width, src.Height)
	alpha := 0.5 + 0.5*math.Sin(phase(i, n))
	sigma := 30 * (1 - alpha)
	for j, v := range src.Pix {
		out.Pix[j] = toByte(float64(v)*alpha + rng.NormFloat64()*sigma)
	}
	return out
}

// glitchEffect shifts a third of the rows on the 12-row grid.
func glitchEffect(src *Raster, i, _ int, _ *rand.Rand) *Raster {
	out := src.Clone()
	tmp := make([]uint8, out.Stride)
	for y := 0; y < out.Height; y += 12 {
		if (i+y)%3 == 0 {
			rollRowInPlace(out.Row(y), tmp, int(20*math.Sin(float64(i+y))))
		}
	}
	return out
}

// --- Pixel shuffling helpers ---

// mod is a floor modulo for a positive m.
func mod(a, m int) int {
	a %= m
	if a < 0 {
		a += m
	}
	return a
}

// rollRow writes src shifted right by k pixels, wrapping around, into dst.
// Both slices hold whole RGB pixels and have the same length.
func rollRow(dst, src []uint8, k int) {
	w := len(src) / 3
	if w == 0 {
		return
	}
	k = mod(k, w)
	copy(dst[3*k:], src[:3*(w-k)])
	copy(dst[:3*k], src[3*(w-k):])
}

func rollRowInPlace(row, tmp []uint8, k int) {
	tmp = tmp[:len(row)]
	copy(tmp, row)
	rollRow(row, tmp, k)
}

// rollColumn writes column x of src shifted down by k pixels, wrapping
// around, into column x of dst.
func rollColumn(dst, src *Raster, x, k int) {
	h := src.Height
	if h == 0 {
		return
	}
	for y := 0; y < h; y++ {
		dst.Set(x, mod(y+k, h), src.RGBAt(x, y))
	}
}

func flipVertical(r *Raster) {
	tmp := make([]uint8, r.Stride)
	for top, bot := 0, r.Height-1; top < bot; top, bot = top+1, bot-1 {
		copy(tmp, r.Row(top))
		copy(r.Row(top), r.Row(bot))
		copy(r.Row(bot), tmp)
	}
}

func flipHorizontal(r *Raster) {
	for y := 0; y < r.Height; y++ {
		row := r.Row(y)
		for l, rt := 0, r.Width-1; l < rt; l, rt = l+1, rt-1 {
			a, b := row[3*l:3*l+3], row[3*rt:3*rt+3]
			a[0], b[0] = b[0], a[0]
			a[1], b[1] = b[1], a[1]
			a[2], b[2] = b[2], a[2]
		}
	}
}

// rotate90 turns r a quarter turn counterclockwise: the right column
// becomes the top row.
func rotate90(r *Raster) *Raster {
	out := NewRaster(r.Height, r.Width)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			out.Set(x, y, r.RGBAt(r.Width-1-y, x))
		}
	}
	return out
}
