package fractal

import (
	"math"
	"math/cmplx"
)

// IterateFunc maps a plane point to its escape step. It returns maxIter for
// points that never escape and the escape step index otherwise. julia is only
// read by the julia family.
type IterateFunc func(c complex128, maxIter int, power, bailout float64, julia complex128) int

// Fractal is a handle into the fractal registry.
type Fractal int

const (
	FractalMandelbrot  Fractal = iota // z^p + c from z=0
	FractalJulia                      // z^p + J·e^(0.2ni), phase-rotating constant
	FractalBurningShip                // folded |Re|, -|Im| with a drifting offset
	FractalNewton                     // perturbed Newton root finding on z^3 - 1
	FractalEldritch                   // trigonometric product distortion
	FractalCrystal                    // faceted |Re|^p - |Im|^p
	FractalMembrane                   // damped pulsing multiplier
	FractalVertex                     // angular |sin| multiplier
	FractalRay                        // high-frequency electric multiplier
	FractalWave                       // smooth harmonic multiplier
	FractalNature                     // branching organic multiplier
	FractalSpider                     // z^p + c + z/2
	FractalCustom                     // sin/cos folding
)

var fractals = newRegistry("fractal", []entry[IterateFunc]{
	{"mandelbrot", mandelbrot},
	{"julia", julia},
	{"burning_ship", burningShip},
	{"newton", newton},
	{"eldritch", eldritch},
	{"crystal", crystal},
	{"membrane", membrane},
	{"vertex", vertex},
	{"ray", ray},
	{"wave", wave},
	{"nature", nature},
	{"spider", spider},
	{"custom", custom},
})

// FractalTypes lists the registered fractal names in registration order.
func FractalTypes() []string { return fractals.list() }

// ParseFractal resolves name, falling back to FractalMandelbrot.
func ParseFractal(name string) Fractal { return Fractal(fractals.parse(name)) }

// RegisterFractal adds a fractal under name. Register during startup, before
// rendering begins.
func RegisterFractal(name string, fn IterateFunc) (Fractal, error) {
	id, err := fractals.register(name, fn)
	return Fractal(id), err
}

// Func returns the iterator for f, or mandelbrot for an unknown handle.
func (f Fractal) Func() IterateFunc { return fractals.lookup(int(f)) }

func (f Fractal) String() string { return fractals.name(int(f)) }

func (f Fractal) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Fractal) UnmarshalText(b []byte) error {
	*f = ParseFractal(string(b))
	return nil
}

// escaped treats NaN and +Inf magnitudes as escaped.
func escaped(z complex128, bailout float64) bool {
	return !(cmplx.Abs(z) <= bailout)
}

// pow raises z to power. Whole exponents up to 100 use exact repeated
// multiplication, so pow(z, 2) is z*z.
func pow(z complex128, power float64) complex128 {
	if power == math.Trunc(power) && math.Abs(power) <= 100 {
		n := int(power)
		if n < 0 {
			return 1 / powu(z, -n)
		}
		return powu(z, n)
	}
	return cmplx.Pow(z, complex(power, 0))
}

func powu(z complex128, n int) complex128 {
	r := complex(1, 0)
	p := z
	for mask := 1; mask > 0 && n >= mask; mask <<= 1 {
		if n&mask != 0 {
			r *= p
		}
		p *= p
	}
	return r
}

// scale multiplies both components by a real factor.
func scale(z complex128, f float64) complex128 {
	return complex(real(z)*f, imag(z)*f)
}

// cis returns e^(i·theta).
func cis(theta float64) complex128 {
	return cmplx.Exp(complex(0, theta))
}

func mandelbrot(c complex128, maxIter int, power, bailout float64, _ complex128) int {
	var z complex128
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		z = pow(z, power) + c
	}
	return maxIter
}

func julia(c complex128, maxIter int, power, bailout float64, k complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		z = pow(z, power) + k*cis(0.2*float64(i))
	}
	return maxIter
}

func burningShip(c complex128, maxIter int, power, bailout float64, _ complex128) int {
	var z complex128
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		n := float64(i)
		z = complex(math.Abs(real(z)), -math.Abs(imag(z)))
		z = pow(z, power) + c + scale(complex(math.Sin(n*0.1), math.Cos(n*0.1)), 0.2)
	}
	return maxIter
}

// newton converges when z collapses to the origin or lands on a root of
// z^3 - 1; a vanishing derivative stops at the current step.
func newton(c complex128, maxIter int, _, bailout float64, _ complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		f := z*z*z - 1
		if cmplx.Abs(z) < 0.001 || cmplx.Abs(f) < 0.001 {
			return maxIter
		}
		n := float64(i)
		df := 3*z*z + scale(cis(n*0.1), 0.5)
		if cmplx.Abs(df) < 1e-6 {
			return i
		}
		z = z - f/df + scale(cis(n*0.2), 0.1)
		if escaped(z, bailout) {
			return i
		}
	}
	return maxIter
}

func eldritch(c complex128, maxIter int, power, bailout float64, _ complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		n := float64(i)
		z = (pow(z, power) + c) * complex(math.Sin(real(z)*n*0.1), math.Cos(imag(z)*n*0.1))
		z += scale(cis(real(z)+imag(z)), 0.2)
	}
	return maxIter
}

func crystal(c complex128, maxIter int, power, bailout float64, _ complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		w := complex(math.Pow(math.Abs(real(z)), power)-math.Pow(math.Abs(imag(z)), power), 0) + c
		z = w + complex(0, math.Sin(imag(w)*3)+math.Cos(real(w)*3))
		z += scale(cis(float64(i)*0.3), 0.1)
	}
	return maxIter
}

// The stylized variants below share one shape: scale z^p + c by a
// step-dependent factor, then add a small trigonometric offset computed from
// the new z.

func membrane(c complex128, maxIter int, power, bailout float64, _ complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		n := float64(i)
		z = scale(pow(z, power)+c, 0.7+0.3*math.Sin(n*0.2+real(z)*0.5))
		z += scale(complex(math.Sin(real(z)*5+n*0.1), math.Cos(imag(z)*5+n*0.1)), 0.15)
	}
	return maxIter
}

func vertex(c complex128, maxIter int, power, bailout float64, _ complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		n := float64(i)
		z = scale(pow(z, power)+c, 1+0.7*math.Abs(math.Sin(n*0.5+imag(z)*0.3)))
		z += scale(complex(math.Sin(real(z)*8+n*0.2), math.Cos(imag(z)*8+n*0.2)), 0.25)
	}
	return maxIter
}

func ray(c complex128, maxIter int, power, bailout float64, _ complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		n := float64(i)
		z = scale(pow(z, power)+c, 1+0.9*math.Sin(n*0.7+real(z)*0.6))
		z += scale(complex(math.Sin(real(z)*12+n*0.3), math.Cos(imag(z)*12+n*0.3)), 0.35)
	}
	return maxIter
}

func wave(c complex128, maxIter int, power, bailout float64, _ complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		n := float64(i)
		z = scale(pow(z, power)+c, 1+0.5*math.Sin(n*0.3+imag(z)*0.4))
		z += scale(complex(math.Sin(real(z)*6+n*0.15), math.Cos(imag(z)*6+n*0.15)), 0.22)
	}
	return maxIter
}

func nature(c complex128, maxIter int, power, bailout float64, _ complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		n := float64(i)
		z = scale(pow(z, power)+c, 1+0.4*math.Sin(n*0.2+real(z)*0.2+imag(z)*0.2))
		z += scale(complex(math.Sin(real(z)*3+n*0.1), math.Cos(imag(z)*3+n*0.1)), 0.18)
	}
	return maxIter
}

func spider(c complex128, maxIter int, power, bailout float64, _ complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		z = pow(z, power) + c + scale(z, 0.5)
	}
	return maxIter
}

func custom(c complex128, maxIter int, _, bailout float64, _ complex128) int {
	z := c
	for i := 0; i < maxIter; i++ {
		if escaped(z, bailout) {
			return i
		}
		z = complex(math.Sin(real(z))+real(c), math.Cos(imag(z))+imag(c))
	}
	return maxIter
}
