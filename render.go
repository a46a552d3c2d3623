package fractal

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Renderer computes rasters row by row on a bounded worker pool. The zero
// value is ready to use. A Renderer holds no per-render state and may be
// shared by concurrent callers.
type Renderer struct {
	// Workers bounds the number of rows computed at once. Zero or less
	// means runtime.GOMAXPROCS(0).
	Workers int
	// Debug prints per-render timing stats to stderr.
	Debug bool
	// OnRow, if set, is called after each finished row with the number of
	// rows done so far. It runs on worker goroutines.
	OnRow func(done, total int)
	// OnFrame is the GenerateFrames counterpart of OnRow.
	OnFrame func(done, total int)
}

// Render renders p with a default Renderer.
func Render(ctx context.Context, p Params) (*Raster, error) {
	var r Renderer
	return r.Render(ctx, p)
}

// Iterations returns the escape step of every pixel of p, indexed [y][x].
func Iterations(ctx context.Context, p Params) ([][]int, error) {
	var r Renderer
	return r.Iterations(ctx, p)
}

// sampler is the per-render pipeline resolved once from the registries:
// pixel to plane, plane transform, iteration.
type sampler struct {
	p         *Params
	view      View
	iterate   IterateFunc
	transform TransformFunc
}

func newSampler(p *Params) *sampler {
	return &sampler{
		p:         p,
		view:      NewView(*p),
		iterate:   p.Fractal.Func(),
		transform: p.Transform.Func(),
	}
}

// at returns the escape step for pixel (x, y), clamped to [0, MaxIterations].
func (s *sampler) at(x, y int) int {
	c := s.view.PlaneAt(float64(x), float64(y))
	c = s.transform(c, s.p)
	n := s.iterate(c, s.p.MaxIterations, s.p.Power, s.p.Bailout, s.p.JuliaConst)
	return min(max(n, 0), s.p.MaxIterations)
}

// colorTableLimit caps the precomputed color table. Deeper renders color
// each pixel as it is computed.
var colorTableLimit = 1 << 16

// colorFunc returns the escape step to color mapping for p. Interior points
// are black.
func colorFunc(p *Params) func(n int) RGB {
	if p.MaxIterations < colorTableLimit {
		table := colorTable(p)
		return func(n int) RGB { return table[n] }
	}
	palette := p.Palette.Func()
	tone := p.tone()
	maxIter, shift := p.MaxIterations, p.ColorShift
	return func(n int) RGB {
		if n >= maxIter {
			return Black
		}
		return palette(normalize(n, maxIter, shift), n, tone)
	}
}

// colorTable maps every possible escape step to its color. The last entry
// is the interior color.
func colorTable(p *Params) []RGB {
	palette := p.Palette.Func()
	tone := p.tone()
	table := make([]RGB, p.MaxIterations+1)
	for n := 0; n < p.MaxIterations; n++ {
		table[n] = palette(normalize(n, p.MaxIterations, p.ColorShift), n, tone)
	}
	table[p.MaxIterations] = Black
	return table
}

// Render validates p and renders it. On cancellation it returns the wrapped
// context error and no raster.
func (r *Renderer) Render(ctx context.Context, p Params) (*Raster, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	s := newSampler(&p)
	color := colorFunc(&p)
	stats := renderStats{width: p.Width, height: p.Height, workers: r.workers(), table: time.Since(start)}

	img := NewRaster(p.Width, p.Height)
	var interior atomic.Int64
	err := r.rows(ctx, p.Height, func(y int) {
		b := img.band(y)
		in := 0
		for x := 0; x < p.Width; x++ {
			n := s.at(x, y)
			if n == p.MaxIterations {
				in++
			}
			b.set(x, color(n))
		}
		if r.Debug {
			interior.Add(int64(in))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", p.Fractal, err)
	}
	stats.total = time.Since(start)
	stats.interior = int(interior.Load())
	r.debugLog(stats)
	return img, nil
}

// Iterations runs the render pipeline without coloring.
func (r *Renderer) Iterations(ctx context.Context, p Params) ([][]int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := newSampler(&p)
	grid := make([][]int, p.Height)
	err := r.rows(ctx, p.Height, func(y int) {
		row := make([]int, p.Width)
		for x := range row {
			row[x] = s.at(x, y)
		}
		grid[y] = row
	})
	if err != nil {
		return nil, fmt.Errorf("iterations %s: %w", p.Fractal, err)
	}
	return grid, nil
}

func (r *Renderer) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// rows runs row(y) for every row on the worker pool. Each task owns its row
// exclusively. Cancellation is checked before each row is started.
func (r *Renderer) rows(ctx context.Context, height int, row func(y int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	var done atomic.Int64
	var err error
	for y := 0; y < height; y++ {
		if err = gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row(y)
			if r.OnRow != nil {
				r.OnRow(int(done.Add(1)), height)
			}
			return nil
		})
	}
	if werr := g.Wait(); werr != nil {
		err = werr
	}
	return err
}
