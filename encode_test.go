package fractal

import (
	"bytes"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEncodePNGRoundTrip(t *testing.T) {
	src := gradientRaster(7, 5)
	var buf bytes.Buffer
	if err := EncodePNG(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 7 || b.Dy() != 5 {
		t.Fatalf("decoded size = %v, want 7x5", b)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			want := src.RGBAt(x, y)
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B || a != 0xffff {
				t.Fatalf("(%d,%d) = %d %d %d %d, want %v", x, y, r>>8, g>>8, b>>8, a>>8, want)
			}
		}
	}
}

func TestEncodeGIF(t *testing.T) {
	frames := []*Raster{solidRaster(8, 6, RGB{255, 0, 0}), solidRaster(8, 6, RGB{0, 0, 255})}
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, frames, 50*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 2 {
		t.Fatalf("frames = %d, want 2", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 5 {
			t.Errorf("Delay[%d] = %d, want 5", i, d)
		}
	}
	if g.LoopCount != 0 {
		t.Errorf("LoopCount = %d, want 0 (forever)", g.LoopCount)
	}
	if g.Config.Width != 8 || g.Config.Height != 6 {
		t.Errorf("canvas = %dx%d, want 8x6", g.Config.Width, g.Config.Height)
	}
}

func TestEncodeGIFMixedSizes(t *testing.T) {
	// A quarter-turned frame is taller than the rest.
	frames := []*Raster{NewRaster(6, 4), NewRaster(4, 6)}
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, frames, 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if g.Config.Width != 6 || g.Config.Height != 6 {
		t.Errorf("canvas = %dx%d, want 6x6", g.Config.Width, g.Config.Height)
	}
}

func TestEncodeGIFNoFrames(t *testing.T) {
	if err := EncodeGIF(&bytes.Buffer{}, nil, time.Second); err == nil {
		t.Error("EncodeGIF with no frames succeeded")
	}
}

func TestWritePNGAndGIF(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "out.png")
	if err := WritePNG(pngPath, gradientRaster(4, 4)); err != nil {
		t.Fatal(err)
	}
	gifPath := filepath.Join(dir, "out.gif")
	if err := WriteGIF(gifPath, []*Raster{gradientRaster(4, 4)}, 0); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{pngPath, gifPath} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s: stat = %v, %v", path, info, err)
		}
	}
	if err := WritePNG(filepath.Join(dir, "missing", "x.png"), gradientRaster(1, 1)); err == nil {
		t.Error("WritePNG into a missing directory succeeded")
	}
}

func TestThumbnail(t *testing.T) {
	src := solidRaster(60, 40, RGB{10, 200, 30})
	th := Thumbnail(src, 15, 10)
	if b := th.Bounds(); b.Dx() != 15 || b.Dy() != 10 {
		t.Fatalf("thumbnail = %v, want 15x10", b)
	}
	got := th.RGBAAt(7, 5)
	if absDiff(got.R, 10) > 1 || absDiff(got.G, 200) > 1 || absDiff(got.B, 30) > 1 || got.A != 255 {
		t.Errorf("thumbnail pixel = %v, want about {10 200 30 255}", got)
	}
	if th := Thumbnail(NewRaster(0, 0), 5, 5); th.Bounds().Dx() != 5 {
		t.Errorf("empty source thumbnail = %v", th.Bounds())
	}
}

func TestOutputName(t *testing.T) {
	cases := []struct{ label, ext, want string }{
		{"", "png", "fractal.png"},
		{"   ", ".gif", "fractal.gif"},
		{"my fractal!", "png", "my_fractal_.png"},
		{"shot.png", "png", "shot.png"},
		{"a/b\\c", ".gif", "a_b_c.gif"},
		{"zoom-2.5x", "png", "zoom-2.5x.png"},
	}
	for _, c := range cases {
		if got := OutputName(c.label, c.ext); got != c.want {
			t.Errorf("OutputName(%q, %q) = %q, want %q", c.label, c.ext, got, c.want)
		}
	}
}
