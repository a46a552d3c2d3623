// Package fractal renders escape-time fractals into RGB rasters and animates
// them.
//
// A render is fully described by a [Params] value. Start from
// [DefaultParams] and override what you need:
//
//	p := fractal.DefaultParams()
//	p.Fractal = fractal.FractalJulia
//	p.Palette = fractal.PaletteFire
//	img, err := fractal.Render(ctx, p)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fractal.WritePNG("julia.png", img)
//
// # Pipeline
//
// Every pixel goes through the same steps: the [View] maps it to a plane
// point, the [Transform] distorts the point, the [Fractal] iterator counts
// escape steps, and the [Palette] plus [Calibration] turn the count into a
// color. Points that never escape are black. Rows are computed in parallel
// by a [Renderer]; the output is identical for any worker count.
//
// # Registries
//
// Fractals, palettes, transforms and animations are looked up by name
// through small registries. Each has typed handles with built-in constants
// (such as [FractalMandelbrot]), a Parse function that falls back to the
// first entry on unknown names, a listing function such as [FractalTypes],
// and a Register function for extensions:
//
//	spiky, err := fractal.RegisterFractal("spiky", myIterator)
//
// Register extensions during startup, before rendering begins.
//
// # Animations
//
// [GenerateFrames] produces a frame sequence. Parametric animations such as
// [AnimationZoomIn] vary the parameters and render every frame; effect
// animations such as [AnimationWave] render once and distort the image per
// frame. [AnimationFly] eases the view toward [Params].Motion using [gween].
// Frames are encoded with [EncodeGIF] or [WriteGIF].
//
// [gween]: https://github.com/tanema/gween
package fractal
