// Package render turns a histogram into drawable primitives: positioned
// rectangles, axis ticks and text labels. Layout is a pure function — same
// arguments, same output — and carries no state between calls. Actual
// rasterization lives in chartimg; nothing in this package touches an image.
package render

// LinearScale maps a data domain onto a pixel range. The domain always
// derives from the currently filtered data; a fresh scale is built on every
// recompute, so a stale domain cannot survive a filter change.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// minDomainSpan is the substitute width for a degenerate (zero-width)
// domain so Apply never divides by zero.
const minDomainSpan = 1.0

// NewLinearScale builds a scale from [d0,d1] to [r0,r1]. A degenerate
// domain (d1 <= d0) is clamped to a minimum visible span centered on d0.
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	if d1 <= d0 {
		d0 -= minDomainSpan / 2
		d1 = d0 + minDomainSpan
	}
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Apply maps a domain value to the pixel range.
func (s LinearScale) Apply(v float64) float64 {
	t := (v - s.d0) / (s.d1 - s.d0)
	return s.r0 + t*(s.r1-s.r0)
}

// Domain returns the (possibly clamped) domain bounds.
func (s LinearScale) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the pixel range bounds.
func (s LinearScale) Range() (float64, float64) { return s.r0, s.r1 }
