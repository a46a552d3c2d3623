package fractal

import "math"

// View maps raster pixels to plane points for one Params value. The raster
// center shows Center; Rotation turns the plane around it.
type View struct {
	center         complex128
	halfW, halfH   float64
	scaleX, scaleY float64
	sin, cos       float64
}

// NewView precomputes the pixel-to-plane mapping of p. A zero width, height
// or zoom gives a zero scale instead of dividing by zero.
func NewView(p Params) View {
	v := View{
		center: p.Center,
		halfW:  float64(p.Width) / 2,
		halfH:  float64(p.Height) / 2,
	}
	step := float64(max(p.PixelSize, 1))
	if p.Zoom != 0 && p.Width != 0 {
		v.scaleX = p.Span / (p.Zoom * float64(p.Width)) * step
	}
	if p.Zoom != 0 && p.Height != 0 {
		v.scaleY = p.Span / (p.Zoom * float64(p.Height)) * step
	}
	v.sin, v.cos = math.Sincos(p.Rotation)
	return v
}

// Scale returns the plane distance between horizontally and vertically
// adjacent pixels.
func (v View) Scale() (sx, sy float64) { return v.scaleX, v.scaleY }

// PlaneAt returns the plane point under pixel (x, y).
func (v View) PlaneAt(x, y float64) complex128 {
	dx := (x - v.halfW) * v.scaleX
	dy := (y - v.halfH) * v.scaleY
	return complex(
		real(v.center)+dx*v.cos-dy*v.sin,
		imag(v.center)+dx*v.sin+dy*v.cos,
	)
}

// PixelAt inverts PlaneAt. A degenerate axis maps to the raster center.
func (v View) PixelAt(c complex128) (x, y float64) {
	rx := real(c) - real(v.center)
	ry := imag(c) - imag(v.center)
	dx := rx*v.cos + ry*v.sin
	dy := -rx*v.sin + ry*v.cos
	x, y = v.halfW, v.halfH
	if v.scaleX != 0 {
		x += dx / v.scaleX
	}
	if v.scaleY != 0 {
		y += dy / v.scaleY
	}
	return x, y
}
