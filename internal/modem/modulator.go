package modem

import (
	"math"

	"github.com/cosby-modem/cosby/internal/dsp"
)

// Sink is the push-model destination the modulator writes synthesized
// samples to. audio.Sink satisfies this structurally.
type Sink interface {
	Write(samples []float64) error
}

// Modulator synthesizes phase-continuous FSK audio from a byte stream.
// zeroWave holds one cycle of -sin at f0 (peak amplitude 0.5); oneWave
// holds two cycles of -sin at 2f0 (same peak), matching
// make_output_audio's harmonic-domain construction exactly in the time
// domain.
type Modulator struct {
	geometry dsp.Geometry
	zeroWave []float64
	oneWave  []float64
	positive bool
}

// NewModulator builds the wave tables for the given symbol geometry.
func NewModulator(g dsp.Geometry) *Modulator {
	w := g.Wavelength
	zero := make([]float64, w)
	one := make([]float64, w)
	for i := 0; i < w; i++ {
		zero[i] = -0.5 * math.Sin(2*math.Pi*float64(i)/float64(w))
		one[i] = -0.5 * math.Sin(2*math.Pi*2*float64(i)/float64(w))
	}
	return &Modulator{geometry: g, zeroWave: zero, oneWave: one, positive: true}
}

// Modulate writes the full transmission -- a ~5 second zero_wave
// preamble, 8 one-bits of framing preamble, then every bit of data MSB
// first, and a trailing half-cycle pad -- to sink.
func (m *Modulator) Modulate(data []byte, sink Sink) error {
	w := m.geometry.Wavelength
	mLen := m.geometry.SymbolLength
	quarter := w / 4

	prefixCycles := (5 * m.geometry.SampleRate) / w
	for i := 0; i < prefixCycles; i++ {
		if err := sink.Write(m.zeroWave); err != nil {
			return err
		}
	}

	for i := 0; i < 8; i++ {
		if err := sink.Write(m.oneWave[:mLen]); err != nil {
			return err
		}
	}

	m.positive = true
	for _, b := range data {
		for bitIdx := 7; bitIdx >= 0; bitIdx-- {
			bit := (b >> uint(bitIdx)) & 1
			if bit == 1 {
				var slice []float64
				if m.positive {
					slice = m.oneWave[:mLen]
				} else {
					slice = m.oneWave[quarter : quarter+(w-mLen)]
				}
				if err := sink.Write(slice); err != nil {
					return err
				}
				continue
			}

			var slice []float64
			if m.positive {
				slice = m.zeroWave[:mLen]
			} else {
				slice = m.zeroWave[mLen:w]
			}
			if err := sink.Write(slice); err != nil {
				return err
			}
			m.positive = !m.positive
		}
	}

	if m.positive {
		return sink.Write(m.zeroWave[:mLen])
	}
	return sink.Write(m.zeroWave[mLen:w])
}
