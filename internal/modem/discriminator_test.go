package modem

import (
	"testing"

	"github.com/cosby-modem/cosby/internal/dsp"
)

func TestDiscriminator_EmitsZeroWhenF0Dominates(t *testing.T) {
	d := NewDiscriminator(16)
	f0Dominant := dsp.Bin{Re: 1, Im: 0}
	twoF0Weak := dsp.Bin{Re: 0, Im: 0}

	var gotBit int
	var gotEmit bool
	for i := 0; i < len(d.diffs); i++ {
		if bit, emitted := d.Step(f0Dominant, twoF0Weak); emitted {
			gotBit, gotEmit = bit, true
		}
	}
	if !gotEmit {
		t.Fatal("expected a bit while the averaging window fills with f0-dominant samples")
	}
	if gotBit != 0 {
		t.Fatalf("bit = %d, want 0", gotBit)
	}
}

func TestDiscriminator_EmitsOneWhen2F0Dominates(t *testing.T) {
	d := NewDiscriminator(16)
	// First drive it to symbol 0 the way TestDiscriminator_EmitsZeroWhenF0Dominates does.
	f0Dominant := dsp.Bin{Re: 1, Im: 0}
	weak := dsp.Bin{Re: 0, Im: 0}
	for i := 0; i < len(d.diffs); i++ {
		d.Step(f0Dominant, weak)
	}

	var gotBit int
	var gotEmit bool
	twoF0Dominant := dsp.Bin{Re: 0, Im: 0}
	strong := dsp.Bin{Re: 1, Im: 0}
	for i := 0; i < len(d.diffs); i++ {
		if bit, emitted := d.Step(twoF0Dominant, strong); emitted {
			gotBit, gotEmit = bit, true
		}
	}
	if !gotEmit {
		t.Fatal("expected a bit while the averaging window fills with 2f0-dominant samples")
	}
	if gotBit != 1 {
		t.Fatalf("bit = %d, want 1", gotBit)
	}
}

func TestDiscriminator_ForcedEmissionOnTimeout(t *testing.T) {
	d := NewDiscriminator(16)
	neutral := dsp.Bin{Re: 0, Im: 0}

	emissions := 0
	for i := 0; i < 200; i++ {
		_, emitted := d.Step(neutral, neutral)
		if emitted {
			emissions++
		}
	}
	if emissions == 0 {
		t.Fatal("expected at least one forced emission when the discriminant never crosses zero")
	}
}

func TestDiscriminator_SamplesInSymbolNeverExceedsMaxWait(t *testing.T) {
	d := NewDiscriminator(16)
	neutral := dsp.Bin{Re: 0, Im: 0}
	for i := 0; i < 500; i++ {
		d.Step(neutral, neutral)
		if d.samplesInSymbol > d.maxWait+1 {
			t.Fatalf("samplesInSymbol = %d exceeded maxWait+1 = %d", d.samplesInSymbol, d.maxWait+1)
		}
	}
}
