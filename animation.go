package fractal

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"sort"
	"sync/atomic"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/sync/errgroup"
)

// VaryFunc derives the parameters of frame i of n from the base parameters.
type VaryFunc func(p Params, i, n int) Params

// EffectFunc distorts a rendered base image into frame i of n. It must not
// modify src, which is shared by every frame. rng is private to the frame.
type EffectFunc func(src *Raster, i, n int, rng *rand.Rand) *Raster

// animator is one registry entry. Exactly one of vary and effect is set.
type animator struct {
	vary   VaryFunc
	effect EffectFunc
}

// Animation is a handle into the animation registry.
type Animation int

const (
	// Effects: the base image is rendered once and distorted per frame.
	AnimationColor Animation = iota
	AnimationCrystal
	AnimationMembrane
	AnimationVertex
	AnimationRay
	AnimationWave
	AnimationNature
	AnimationGlitch
	AnimationPlasmaWave

	// Parametric: every frame is a fresh render with varied parameters.
	AnimationZoomIn
	AnimationZoomOut
	AnimationRotate
	AnimationPan
	AnimationPulse
	AnimationJulia
	AnimationPaletteShift
	AnimationWarp
	AnimationFly
)

var animations = newRegistry("animation", []entry[animator]{
	{"color", animator{effect: colorEffect}},
	{"crystal", animator{effect: crystalEffect}},
	{"membrane", animator{effect: membraneEffect}},
	{"vertex", animator{effect: vertexEffect}},
	{"ray", animator{effect: rayEffect}},
	{"wave", animator{effect: waveEffect}},
	{"nature", animator{effect: natureEffect}},
	{"glitch", animator{effect: glitchEffect}},
	{"plasma_wave", animator{effect: plasmaWaveEffect}},
	{"zoom_in", animator{vary: zoomIn}},
	{"zoom_out", animator{vary: zoomOut}},
	{"rotate", animator{vary: rotate}},
	{"pan", animator{vary: pan}},
	{"pulse", animator{vary: pulse}},
	{"julia", animator{vary: juliaOrbit}},
	{"palette_shift", animator{vary: paletteShift}},
	{"warp", animator{vary: warp}},
	{"fly", animator{vary: fly}},
})

// AnimationTypes lists the registered animation names in registration order.
func AnimationTypes() []string { return animations.list() }

// ParseAnimation resolves name, falling back to AnimationColor.
func ParseAnimation(name string) Animation { return Animation(animations.parse(name)) }

// RegisterAnimation adds a parametric animation under name.
func RegisterAnimation(name string, fn VaryFunc) (Animation, error) {
	if fn == nil {
		return 0, fmt.Errorf("register animation %q: nil func", name)
	}
	id, err := animations.register(name, animator{vary: fn})
	return Animation(id), err
}

// RegisterEffect adds a post-process animation under name.
func RegisterEffect(name string, fn EffectFunc) (Animation, error) {
	if fn == nil {
		return 0, fmt.Errorf("register effect %q: nil func", name)
	}
	id, err := animations.register(name, animator{effect: fn})
	return Animation(id), err
}

// Effect reports whether a distorts one base render instead of rendering
// every frame.
func (a Animation) Effect() bool { return animations.lookup(int(a)).effect != nil }

func (a Animation) String() string { return animations.name(int(a)) }

func (a Animation) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Animation) UnmarshalText(b []byte) error {
	*a = ParseAnimation(string(b))
	return nil
}

// --- Parametric animations ---

// phase is the fraction of a full turn covered by frame i of n.
func phase(i, n int) float64 { return 2 * math.Pi * float64(i) / float64(n) }

func zoomIn(p Params, i, _ int) Params {
	p.Zoom *= math.Pow(1.05, float64(i))
	return p
}

func zoomOut(p Params, i, _ int) Params {
	p.Zoom *= math.Pow(0.95, float64(i))
	return p
}

// rotate orbits the view center around the plane origin.
func rotate(p Params, i, n int) Params {
	r, theta := cmplx.Polar(p.Center)
	p.Center = cmplx.Rect(r, theta+phase(i, n))
	return p
}

func pan(p Params, i, n int) Params {
	s, c := math.Sincos(phase(i, n))
	p.Center += complex(c*0.5, s*0.5)
	return p
}

func pulse(p Params, i, n int) Params {
	p.Zoom *= 1 + 0.3*math.Sin(phase(i, n))
	return p
}

// juliaOrbit walks the julia constant once around the unit circle.
func juliaOrbit(p Params, i, n int) Params {
	s, c := math.Sincos(phase(i, n))
	p.Fractal = FractalJulia
	p.JuliaConst = complex(c, s)
	return p
}

func paletteShift(p Params, i, n int) Params {
	p.ColorShift = float64(i) / float64(n)
	return p
}

func warp(p Params, _, _ int) Params {
	p.Transform = TransformWaves
	return p
}

var easeFuncs = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"outBack":      ease.OutBack,
	"outBounce":    ease.OutBounce,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
}

// EaseTypes lists the ease names accepted by Motion.Ease, sorted.
func EaseTypes() []string {
	names := make([]string, 0, len(easeFuncs))
	for name := range easeFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// easeFunc resolves an ease name; unknown names ease linearly.
func easeFunc(name string) ease.TweenFunc {
	if fn, ok := easeFuncs[name]; ok {
		return fn
	}
	return ease.Linear
}

// fly eases the view from (Center, Zoom) to (Motion.Center, Motion.Zoom).
// The first frame is the start and the last frame the end. Zoom moves
// geometrically so every frame magnifies by a similar factor.
func fly(p Params, i, n int) Params {
	var t float32
	if n > 1 {
		t = float32(i) / float32(n-1)
	}
	tw := gween.New(0, 1, 1, easeFunc(p.Motion.Ease))
	k32, _ := tw.Set(t)
	k := float64(k32)

	p.Center += scale(p.Motion.Center-p.Center, k)
	if p.Motion.Zoom > 0 && p.Zoom > 0 {
		p.Zoom *= math.Pow(p.Motion.Zoom/p.Zoom, k)
	}
	return p
}

// --- Frame generation ---

func checkFrame(i, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: frame count %d must be at least 1", ErrInvalidParams, n)
	}
	if i < 0 || i >= n {
		return fmt.Errorf("%w: frame index %d out of range [0, %d)", ErrInvalidParams, i, n)
	}
	return nil
}

// FrameParams returns the parameters frame i of n is rendered with. Effect
// animations render every frame from p itself.
func FrameParams(p Params, a Animation, i, n int) (Params, error) {
	if err := checkFrame(i, n); err != nil {
		return Params{}, err
	}
	if anim := animations.lookup(int(a)); anim.vary != nil {
		p = anim.vary(p, i, n)
	}
	return p, p.Validate()
}

// frameRand returns the generator for frame i. Frames never share one.
func frameRand(seed uint64, i int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(i)))
}

// GenerateFrame renders frame i of n with a default Renderer.
func GenerateFrame(ctx context.Context, p Params, a Animation, i, n int) (*Raster, error) {
	var r Renderer
	return r.GenerateFrame(ctx, p, a, i, n)
}

// GenerateFrames renders all n frames with a default Renderer.
func GenerateFrames(ctx context.Context, p Params, a Animation, n int) ([]*Raster, error) {
	var r Renderer
	return r.GenerateFrames(ctx, p, a, n)
}

// GenerateFrame renders frame i of n.
func (r *Renderer) GenerateFrame(ctx context.Context, p Params, a Animation, i, n int) (*Raster, error) {
	fp, err := FrameParams(p, a, i, n)
	if err != nil {
		return nil, err
	}
	img, err := r.Render(ctx, fp)
	if err != nil {
		return nil, err
	}
	if anim := animations.lookup(int(a)); anim.effect != nil {
		img = anim.effect(img, i, n, frameRand(p.Seed, i))
	}
	return img, nil
}

// GenerateFrames renders n frames ordered by index. Parametric frames are
// rendered in parallel; effect animations render the base image once and
// distort it in parallel. Workers bounds the frames in flight.
func (r *Renderer) GenerateFrames(ctx context.Context, p Params, a Animation, n int) ([]*Raster, error) {
	if err := checkFrame(0, n); err != nil {
		return nil, err
	}
	start := time.Now()
	anim := animations.lookup(int(a))

	var base *Raster
	frame := r.Render
	if anim.effect != nil {
		var err error
		if base, err = r.Render(ctx, p); err != nil {
			return nil, err
		}
	} else {
		// Frames already run in parallel; keep each render on one goroutine.
		sub := Renderer{Workers: 1}
		frame = sub.Render
	}

	frames := make([]*Raster, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	var done atomic.Int64
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if base != nil {
				frames[i] = anim.effect(base, i, n, frameRand(p.Seed, i))
			} else {
				fp, err := FrameParams(p, a, i, n)
				if err != nil {
					return err
				}
				if frames[i], err = frame(gctx, fp); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
			}
			if r.OnFrame != nil {
				r.OnFrame(int(done.Add(1)), n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("animation %s: %w", a, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("animation %s: %w", a, err)
	}
	r.debugLogFrames(a, n, time.Since(start))
	return frames, nil
}
