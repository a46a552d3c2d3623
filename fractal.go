package fractal

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned (wrapped) when a render or frame request is
// rejected before any pixel is computed.
var ErrInvalidParams = errors.New("fractal: invalid parameters")

// ErrDuplicateName is returned when a registry already holds the given name.
var ErrDuplicateName = errors.New("fractal: name already registered")

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Black is the color of interior points, which never escape.
var Black = RGB{}

// Motion is the endpoint of the eased "fly" animation. The animation tweens
// Params.Center and Params.Zoom toward Center and Zoom using the gween ease
// function named by Ease (see EaseTypes).
type Motion struct {
	Center complex128
	Zoom   float64
	Ease   string
}

// Params is the immutable configuration consumed by one render call.
// Use DefaultParams and override fields; the zero value is not renderable.
type Params struct {
	// Width and Height are the raster size in pixels.
	Width, Height int
	// PixelSize is the sampling stride; the plane distance between two
	// adjacent pixels is multiplied by it.
	PixelSize int

	Fractal   Fractal
	Palette   Palette
	Transform Transform

	MaxIterations int
	// Power is the exponent of the z^power step.
	Power float64
	// Bailout is the escape radius.
	Bailout float64
	// JuliaConst is used only by the julia family.
	JuliaConst complex128

	// Zoom divides the visible plane range. Must be > 0.
	Zoom float64
	// Center is the plane point shown at the middle of the raster.
	Center complex128
	// Span is the plane range covered by the raster at zoom 1.
	Span float64
	// Rotation rotates the view around Center, in radians.
	Rotation float64

	// ColorShift offsets the normalized iteration value; wraps mod 1.
	ColorShift float64
	// Intensity scales palette output before calibration.
	Intensity float64
	Calibration

	// Seed feeds the "random" palette and post-process noise.
	Seed uint64
	// Sectors is the number of kaleidoscope sectors.
	Sectors int

	Motion Motion
}

// DefaultParams returns a 600x400 mandelbrot render with every knob at its
// neutral value.
func DefaultParams() Params {
	return Params{
		Width:         600,
		Height:        400,
		PixelSize:     1,
		Fractal:       FractalMandelbrot,
		Palette:       PaletteRainbow,
		Transform:     TransformNone,
		MaxIterations: 100,
		Power:         2.0,
		Bailout:       2.0,
		JuliaConst:    complex(-0.7, 0.27),
		Zoom:          1.0,
		Span:          4.0,
		Intensity:     1.0,
		Calibration:   IdentityCalibration,
		Sectors:       6,
		Motion:        Motion{Zoom: 8, Ease: "inOutQuad"},
	}
}

// Validate reports the first field that makes p unrenderable.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0:
		return fmt.Errorf("%w: width %d must be positive", ErrInvalidParams, p.Width)
	case p.Height <= 0:
		return fmt.Errorf("%w: height %d must be positive", ErrInvalidParams, p.Height)
	case p.PixelSize < 1:
		return fmt.Errorf("%w: pixel size %d must be at least 1", ErrInvalidParams, p.PixelSize)
	case p.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations %d must be positive", ErrInvalidParams, p.MaxIterations)
	case !(p.Zoom > 0) || math.IsInf(p.Zoom, 0):
		return fmt.Errorf("%w: zoom %v must be positive and finite", ErrInvalidParams, p.Zoom)
	case !(p.Span > 0) || math.IsInf(p.Span, 0):
		return fmt.Errorf("%w: span %v must be positive and finite", ErrInvalidParams, p.Span)
	case p.Sectors < 1:
		return fmt.Errorf("%w: sectors %d must be at least 1", ErrInvalidParams, p.Sectors)
	}
	return nil
}

// tone extracts the palette inputs from p.
func (p *Params) tone() Tone {
	return Tone{Intensity: p.Intensity, Calibration: p.Calibration, Seed: p.Seed}
}

// normalize maps an iteration count to the palette input t in [0, 1).
func normalize(iterations, maxIter int, shift float64) float64 {
	t := float64(iterations)/float64(maxIter) + shift
	return wrap01(t)
}

// wrap01 is a floor modulo by 1, so negative inputs land in [0, 1) too.
func wrap01(v float64) float64 {
	v -= math.Floor(v)
	if v >= 1 {
		v = 0
	}
	return v
}
