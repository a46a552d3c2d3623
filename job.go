package fractal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Job is a render or animation request in the flat key layout used by saved
// parameter files. Missing keys keep the DefaultParams values; unknown
// fractal, palette, transform and animation names fall back like the
// Parse functions do.
type Job struct {
	Fractal    string  `json:"fractal"`
	Palette    string  `json:"palette"`
	Transform  string  `json:"transform"`
	Iterations int     `json:"iterations"`
	Zoom       float64 `json:"zoom"`
	CenterX    float64 `json:"center_x"`
	CenterY    float64 `json:"center_y"`
	ColorShift float64 `json:"color_shift"`
	Power      float64 `json:"power"`
	Bailout    float64 `json:"bailout"`
	Intensity  float64 `json:"intensity"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	// PixelSize accepts fractional values and truncates them.
	PixelSize float64 `json:"pixel_size"`
	JuliaReal float64 `json:"julia_real"`
	JuliaImag float64 `json:"julia_imag"`

	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Gamma      float64 `json:"gamma"`
	HueShift   float64 `json:"hue_shift"`

	Seed     uint64  `json:"seed"`
	Sectors  int     `json:"sectors"`
	Rotation float64 `json:"rotation"`
	Span     float64 `json:"span"`

	AnimType     string `json:"anim_type"`
	NumFrames    int    `json:"num_frames"`
	FrameDelayMS int    `json:"frame_delay_ms"`
	GIFName      string `json:"gif_name"`
	PNGName      string `json:"png_name"`

	FlyX    float64 `json:"fly_x"`
	FlyY    float64 `json:"fly_y"`
	FlyZoom float64 `json:"fly_zoom"`
	Ease    string  `json:"ease"`
}

// DefaultJob returns a job that describes DefaultParams and a 30-frame
// color animation.
func DefaultJob() *Job {
	p := DefaultParams()
	return &Job{
		Fractal:      p.Fractal.String(),
		Palette:      p.Palette.String(),
		Transform:    p.Transform.String(),
		Iterations:   p.MaxIterations,
		Zoom:         p.Zoom,
		CenterX:      real(p.Center),
		CenterY:      imag(p.Center),
		Power:        p.Power,
		Bailout:      p.Bailout,
		Intensity:    p.Intensity,
		Width:        p.Width,
		Height:       p.Height,
		PixelSize:    float64(p.PixelSize),
		JuliaReal:    real(p.JuliaConst),
		JuliaImag:    imag(p.JuliaConst),
		Brightness:   p.Brightness,
		Contrast:     p.Contrast,
		Saturation:   p.Saturation,
		Gamma:        p.Gamma,
		HueShift:     p.HueShift,
		Seed:         p.Seed,
		Sectors:      p.Sectors,
		Rotation:     p.Rotation,
		Span:         p.Span,
		AnimType:     AnimationColor.String(),
		NumFrames:    30,
		FrameDelayMS: 50,
		GIFName:      "fractal.gif",
		PNGName:      "fractal.png",
		FlyX:         real(p.Motion.Center),
		FlyY:         imag(p.Motion.Center),
		FlyZoom:      p.Motion.Zoom,
		Ease:         p.Motion.Ease,
	}
}

// LoadJob parses a JSON job on top of DefaultJob.
func LoadJob(jsonData []byte) (*Job, error) {
	j := DefaultJob()
	if err := json.Unmarshal(jsonData, j); err != nil {
		return nil, fmt.Errorf("parse job: %w", err)
	}
	return j, nil
}

// Params converts the job to validated render parameters.
func (j *Job) Params() (Params, error) {
	p := Params{
		Width:         j.Width,
		Height:        j.Height,
		PixelSize:     int(j.PixelSize),
		Fractal:       ParseFractal(j.Fractal),
		Palette:       ParsePalette(j.Palette),
		Transform:     ParseTransform(j.Transform),
		MaxIterations: j.Iterations,
		Power:         j.Power,
		Bailout:       j.Bailout,
		JuliaConst:    complex(j.JuliaReal, j.JuliaImag),
		Zoom:          j.Zoom,
		Center:        complex(j.CenterX, j.CenterY),
		Span:          j.Span,
		Rotation:      j.Rotation,
		ColorShift:    j.ColorShift,
		Intensity:     j.Intensity,
		Calibration: Calibration{
			Brightness: j.Brightness,
			Contrast:   j.Contrast,
			Saturation: j.Saturation,
			Gamma:      j.Gamma,
			HueShift:   j.HueShift,
		},
		Seed:    j.Seed,
		Sectors: j.Sectors,
		Motion: Motion{
			Center: complex(j.FlyX, j.FlyY),
			Zoom:   j.FlyZoom,
			Ease:   j.Ease,
		},
	}
	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("job: %w", err)
	}
	return p, nil
}

// Animation resolves AnimType.
func (j *Job) Animation() Animation { return ParseAnimation(j.AnimType) }

// Delay is the per-frame GIF delay.
func (j *Job) Delay() time.Duration { return time.Duration(j.FrameDelayMS) * time.Millisecond }
