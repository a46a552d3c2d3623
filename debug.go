package fractal

import (
	"fmt"
	"os"
	"time"
)

// renderStats holds per-render timing and pixel metrics.
// Only populated when Renderer.Debug is true.
type renderStats struct {
	width, height int
	workers       int
	table         time.Duration
	total         time.Duration
	interior      int
}

// debugLog prints render stats to stderr.
func (r *Renderer) debugLog(stats renderStats) {
	if !r.Debug {
		return
	}
	pixels := stats.width * stats.height
	_, _ = fmt.Fprintf(os.Stderr,
		"[fractal] render %dx%d: rows %d | workers %d | table: %v | total: %v\n",
		stats.width, stats.height, stats.height, stats.workers, stats.table, stats.total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[fractal] interior: %d/%d pixels (%.1f%%)\n",
		stats.interior, pixels, percent(stats.interior, pixels))
}

// debugLogFrames prints animation timing to stderr.
func (r *Renderer) debugLogFrames(a Animation, frames int, elapsed time.Duration) {
	if !r.Debug {
		return
	}
	per := time.Duration(0)
	if frames > 0 {
		per = elapsed / time.Duration(frames)
	}
	_, _ = fmt.Fprintf(os.Stderr, "[fractal] animation %s: frames %d | per frame: %v | total: %v\n",
		a, frames, per, elapsed)
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
