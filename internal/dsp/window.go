package dsp

import "math"

// Window is a precomputed raised half-sine weighting applied to a block
// of samples before spectral analysis, matching init_window's
// w[c] = cos(c/(W-1)*pi - pi/2).
type Window []float64

// NewWindow builds a window of the given length.
func NewWindow(length int) Window {
	w := make(Window, length)
	if length == 1 {
		w[0] = 1
		return w
	}
	for c := range w {
		w[c] = math.Cos(float64(c)/float64(length-1)*math.Pi - math.Pi/2)
	}
	return w
}

// Apply multiplies samples in place by the window. samples must have the
// same length as w.
func (w Window) Apply(samples []float64) {
	for i := range samples {
		samples[i] *= w[i]
	}
}
