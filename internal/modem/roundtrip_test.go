package modem

import (
	"testing"

	"github.com/cosby-modem/cosby/internal/dsp"
)

type sliceSink struct {
	samples []float64
}

func (s *sliceSink) Write(chunk []float64) error {
	s.samples = append(s.samples, chunk...)
	return nil
}

// demodulateAll runs the probe/discriminator/framer pipeline over an
// in-memory sample slice, the way session.Record does over a streaming
// Source but without the EoT stop, and returns the bytes the framer
// recovered.
func demodulateAll(t *testing.T, samples []float64, g dsp.Geometry) []byte {
	t.Helper()

	window := dsp.NewWindow(g.Wavelength)
	probe := dsp.NewProbe(window)
	disc := NewDiscriminator(g.SymbolLength)
	framer := NewFramer()

	var out []byte
	framer.OnByte(func(b byte) { out = append(out, b) })

	scratch := make([]float64, g.Wavelength)
	var bins [3]dsp.Bin
	for off := 0; off+g.Wavelength <= len(samples); off++ {
		copy(scratch, samples[off:off+g.Wavelength])
		probe.Compute(scratch, &bins)
		bit, emitted := disc.Step(bins[1], bins[2])
		if emitted {
			framer.PushBit(bit)
		}
	}
	return out
}

func TestModulateDemodulate_RoundTrip(t *testing.T) {
	g := dsp.NewGeometry(160, 10)
	mod := NewModulator(g)

	sink := &sliceSink{}
	payload := []byte{0x80, 0x01, 0x55, 0xAA}
	if err := mod.Modulate(payload, sink); err != nil {
		t.Fatalf("Modulate: %v", err)
	}

	got := demodulateAll(t, sink.samples, g)
	if len(got) < len(payload) {
		t.Fatalf("recovered %d bytes, want at least %d: %x", len(got), len(payload), got)
	}

	// The framer locks on the eight one bits that follow the preamble
	// tone; the payload must then appear intact as one contiguous run of
	// the recovered bytes.
	found := false
	for start := 0; start+len(payload) <= len(got); start++ {
		match := true
		for i, want := range payload {
			if got[start+i] != want {
				match = false
				break
			}
		}
		if match {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("payload %x not found in recovered bytes %x", payload, got)
	}
}
