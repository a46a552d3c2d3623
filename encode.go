package fractal

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

// EncodePNG writes r to w as an opaque PNG.
func EncodePNG(w io.Writer, r *Raster) error {
	if err := png.Encode(w, r.RGBA()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodeGIF writes frames to w as a looping GIF. Every frame is shown for
// delay, rounded down to GIF's 10ms resolution, and is dithered onto the
// Plan 9 palette. Frames of different sizes are drawn at the top-left of a
// canvas as large as the largest frame.
func EncodeGIF(w io.Writer, frames []*Raster, delay time.Duration) error {
	if len(frames) == 0 {
		return errors.New("encode gif: no frames")
	}
	cs := max(int(delay/(10*time.Millisecond)), 0)
	anim := &gif.GIF{LoopCount: 0}
	for _, f := range frames {
		bounds := f.Bounds()
		p := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(p, bounds, f.RGBA(), image.Point{})
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, cs)
		anim.Config.Width = max(anim.Config.Width, f.Width)
		anim.Config.Height = max(anim.Config.Height, f.Height)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// WritePNG encodes r to a PNG file at path.
func WritePNG(path string, r *Raster) error {
	return writeFile(path, func(w io.Writer) error { return EncodePNG(w, r) })
}

// WriteGIF encodes frames to a GIF file at path.
func WriteGIF(path string, frames []*Raster, delay time.Duration) error {
	return writeFile(path, func(w io.Writer) error { return EncodeGIF(w, frames, delay) })
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Thumbnail scales r to w x h with Catmull-Rom resampling.
func Thumbnail(r *Raster, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	if r.Width == 0 || r.Height == 0 {
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), r.RGBA(), r.Bounds(), draw.Src, nil)
	return dst
}

// OutputName turns a free-form label into a safe file name with the given
// extension. Characters that are unsafe in file names become underscores;
// an empty label becomes "fractal".
func OutputName(label, ext string) string {
	ext = "." + strings.TrimPrefix(ext, ".")
	label = strings.TrimSuffix(strings.TrimSpace(label), ext)
	if label == "" {
		return "fractal" + ext
	}
	var b strings.Builder
	b.Grow(len(label) + len(ext))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	b.WriteString(ext)
	return b.String()
}
