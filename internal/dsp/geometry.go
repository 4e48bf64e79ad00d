// Package dsp implements the sample-rate-agnostic signal processing
// primitives shared by the modulator and demodulator: symbol timing,
// the sliding audio buffer, the analysis window, and the spectral probe.
package dsp

import "math"

// Geometry derives the sample counts that define one symbol from a
// sample rate and base frequency, mirroring DEFAULT_WAVELENGTH and
// DEFAULT_SYMBOL_LENGTH from the reference implementation.
type Geometry struct {
	SampleRate int
	BaseFreq   float64

	// Wavelength is W, the number of samples spanning one cycle at
	// BaseFreq -- also the length of the analysis window.
	Wavelength int

	// SymbolLength is M, the number of samples in one bit period
	// (half of Wavelength, rounded independently as the reference does).
	SymbolLength int
}

// NewGeometry computes W and M for the given sample rate and f0.
func NewGeometry(sampleRate int, baseFreq float64) Geometry {
	return Geometry{
		SampleRate:   sampleRate,
		BaseFreq:     baseFreq,
		Wavelength:   int(math.Round(float64(sampleRate) / baseFreq)),
		SymbolLength: int(math.Round(float64(sampleRate) / (2 * baseFreq))),
	}
}
