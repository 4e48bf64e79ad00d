package modem

import "github.com/cosby-modem/cosby/internal/dsp"

// DefaultPowerRatio is R, the SIGNAL_POWER_RANGE constant: end of
// transmission is declared once the framed signal's average power has
// dropped by this ratio (squared) below the level captured at the
// moment framing occurred.
const DefaultPowerRatio = 16.0

// EoT watches the combined power of the f0/2f0 bins over tumbling blocks
// of N = 2*M samples. Once the deframer has locked onto the preamble, it
// captures the first block's average power as a reference; on every
// later block, a mean power more than R^2 below that reference ends the
// transmission.
type EoT struct {
	power []float64
	pos   int
	ratio float64

	refPowerSq float64
	captured   bool
}

// NewEoT creates an EoT detector sized for symbol length M and ratio R.
func NewEoT(symbolLen int, ratio float64) *EoT {
	n := 2 * symbolLen
	if n < 1 {
		n = 1
	}
	return &EoT{power: make([]float64, n), ratio: ratio}
}

// Step appends one sample's combined bin power. framed indicates whether
// the deframer has acquired the preamble yet. It reports true once the
// reference power has been captured and a later block's mean power has
// fallen below threshold.
func (e *EoT) Step(bin1, bin2 dsp.Bin, framed bool) bool {
	e.power[e.pos] = bin1.MagSq() + bin2.MagSq()
	e.pos++
	if e.pos < len(e.power) {
		return false
	}
	e.pos = 0

	var sum float64
	for _, p := range e.power {
		sum += p
	}
	mean := sum / float64(len(e.power))

	if !framed {
		return false
	}
	if !e.captured {
		e.refPowerSq = mean
		e.captured = true
		return false
	}
	return mean*e.ratio*e.ratio < e.refPowerSq
}
