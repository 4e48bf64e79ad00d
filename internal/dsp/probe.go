package dsp

import "math"

// Bin is one coefficient of a direct DFT: the projection of a windowed
// block of samples onto a single frequency.
type Bin struct {
	Re, Im float64
}

// Mag returns the coefficient's magnitude.
func (b Bin) Mag() float64 { return math.Hypot(b.Re, b.Im) }

// MagSq returns the coefficient's squared magnitude (its power).
func (b Bin) MagSq() float64 { return b.Re*b.Re + b.Im*b.Im }

// Probe computes the DC, f0, and 2f0 DFT bins of a windowed block of W
// samples. It is a direct three-bin DFT rather than a generic FFT: W is
// not guaranteed to be a power of two for an arbitrary sample
// rate/frequency pair, and only three coefficients are ever needed, so a
// direct summation is both simpler and cheaper than a full transform.
type Probe struct {
	window Window
	cosTab [3][]float64
	sinTab [3][]float64
}

// NewProbe builds a probe for the given window, precomputing the
// trigonometric tables for its three bins once up front.
func NewProbe(window Window) *Probe {
	n := len(window)
	p := &Probe{window: window}
	for k := 0; k < 3; k++ {
		p.cosTab[k] = make([]float64, n)
		p.sinTab[k] = make([]float64, n)
		for i := 0; i < n; i++ {
			angle := 2 * math.Pi * float64(k) * float64(i) / float64(n)
			p.cosTab[k][i] = math.Cos(angle)
			p.sinTab[k][i] = math.Sin(angle)
		}
	}
	return p
}

// Compute windows samples in place and writes the DC, f0, and 2f0 bins
// into bins[0], bins[1], bins[2]. samples must have the probe's window
// length.
func (p *Probe) Compute(samples []float64, bins *[3]Bin) {
	p.window.Apply(samples)
	for k := 0; k < 3; k++ {
		var re, im float64
		cos, sin := p.cosTab[k], p.sinTab[k]
		for i, s := range samples {
			re += s * cos[i]
			im -= s * sin[i]
		}
		bins[k] = Bin{Re: re, Im: im}
	}
}
