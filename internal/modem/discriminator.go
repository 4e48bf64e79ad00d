package modem

import "github.com/cosby-modem/cosby/internal/dsp"

// Discriminator recovers a bit stream one sample at a time from
// successive spectral probes. It tracks a smoothed sign of the
// difference between the f0 and 2f0 bin magnitudes over a circular
// window of M/2 samples, emitting a bit whenever that average crosses
// zero in the direction away from the current symbol, or after the
// current symbol has held for floor(1.5*M) samples without a crossing.
type Discriminator struct {
	diffs []float64
	pos   int
	sum   float64

	symbol          int
	samplesInSymbol int

	symbolLen int
	maxWait   int
}

// NewDiscriminator creates a discriminator for the given symbol length M.
func NewDiscriminator(symbolLen int) *Discriminator {
	half := symbolLen / 2
	if half < 1 {
		half = 1
	}
	return &Discriminator{
		diffs:     make([]float64, half),
		symbol:    1,
		symbolLen: symbolLen,
		maxWait:   int(1.5 * float64(symbolLen)),
	}
}

// Step consumes the f0 and 2f0 bins of one sample's spectral probe and
// reports whether a bit was emitted, and its value if so.
func (d *Discriminator) Step(bin1, bin2 dsp.Bin) (bit int, emitted bool) {
	diff := bin1.Mag() - bin2.Mag()
	d.sum += diff - d.diffs[d.pos]
	d.diffs[d.pos] = diff
	d.pos++
	if d.pos == len(d.diffs) {
		d.pos = 0
	}

	avgDiff := d.sum / float64(len(d.diffs))

	switch {
	case d.symbol == 1 && avgDiff > 0:
		d.symbol = 0
		d.samplesInSymbol = 0
		return 0, true
	case d.symbol == 0 && avgDiff < 0:
		d.symbol = 1
		d.samplesInSymbol = 0
		return 1, true
	case d.samplesInSymbol > d.maxWait:
		// This sample counts too, so a held symbol repeats every M samples.
		d.samplesInSymbol -= d.symbolLen - 1
		return d.symbol, true
	default:
		d.samplesInSymbol++
		return 0, false
	}
}
