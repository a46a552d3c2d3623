package fractal

import (
	"math"
	"math/cmplx"
)

// TransformFunc distorts a plane point after the screen mapping and before
// iteration. Implementations must be pure; p is read-only.
type TransformFunc func(z complex128, p *Params) complex128

// Transform is a handle into the transform registry.
type Transform int

const (
	TransformNone Transform = iota
	TransformSin
	TransformSpiral
	TransformSwirl
	TransformWaves
	TransformPolar
	TransformHyperbolic
	TransformKaleidoscope
	TransformFold
	TransformMirror
)

var transforms = newRegistry("transform", []entry[TransformFunc]{
	{"none", identity},
	{"sin", sinTransform},
	{"spiral", spiral},
	{"swirl", swirl},
	{"waves", waves},
	{"polar", polar},
	{"hyperbolic", hyperbolic},
	{"kaleidoscope", kaleidoscope},
	{"fold", fold},
	{"mirror", mirror},
})

// TransformTypes lists the registered transform names in registration order.
func TransformTypes() []string { return transforms.list() }

// ParseTransform resolves name, falling back to TransformNone.
func ParseTransform(name string) Transform { return Transform(transforms.parse(name)) }

// RegisterTransform adds a transform under name.
func RegisterTransform(name string, fn TransformFunc) (Transform, error) {
	id, err := transforms.register(name, fn)
	return Transform(id), err
}

// Func returns the transform for t, or the identity for an unknown handle.
func (t Transform) Func() TransformFunc { return transforms.lookup(int(t)) }

func (t Transform) String() string { return transforms.name(int(t)) }

func (t Transform) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Transform) UnmarshalText(b []byte) error {
	*t = ParseTransform(string(b))
	return nil
}

func identity(z complex128, _ *Params) complex128 { return z }

func sinTransform(z complex128, _ *Params) complex128 {
	return complex(math.Sin(real(z)), math.Sin(imag(z)))
}

// spiral rotates each point by its own radius.
func spiral(z complex128, _ *Params) complex128 {
	r, theta := cmplx.Polar(z)
	return cmplx.Rect(r, theta+r)
}

func swirl(z complex128, _ *Params) complex128 {
	x, y := real(z), imag(z)
	r2 := x*x + y*y
	s, c := math.Sincos(r2)
	return complex(x*s-y*c, x*c+y*s)
}

func waves(z complex128, _ *Params) complex128 {
	x, y := real(z), imag(z)
	return complex(x+0.1*math.Sin(y*10), y+0.1*math.Sin(x*10))
}

// polar returns (r, theta) read back as Cartesian coordinates.
func polar(z complex128, _ *Params) complex128 {
	r, theta := cmplx.Polar(z)
	return complex(r, theta)
}

func hyperbolic(z complex128, _ *Params) complex128 {
	x, y := real(z), imag(z)
	d := x*x + y*y + 0.1
	return complex(x/d, y/d)
}

// kaleidoscope folds the angle into one of p.Sectors wedges and stretches
// the wedge back over the full circle.
func kaleidoscope(z complex128, p *Params) complex128 {
	n := float64(max(p.Sectors, 1))
	r, theta := cmplx.Polar(z)
	wedge := 2 * math.Pi / n
	theta = (theta - wedge*math.Floor(theta/wedge)) * n
	return cmplx.Rect(r, theta)
}

func fold(z complex128, _ *Params) complex128 {
	if real(z) < 0 {
		return complex(-real(z), imag(z))
	}
	return z
}

func mirror(z complex128, _ *Params) complex128 {
	if imag(z) < 0 {
		return complex(real(z), -imag(z))
	}
	return z
}
