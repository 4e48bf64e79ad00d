package modem

import (
	"testing"

	"github.com/cosby-modem/cosby/internal/dsp"
)

func strongBin() dsp.Bin { return dsp.Bin{Re: 10, Im: 0} }
func weakBin() dsp.Bin   { return dsp.Bin{Re: 0.1, Im: 0} }
func zeroBin() dsp.Bin   { return dsp.Bin{Re: 0, Im: 0} }

func TestEoT_NoTriggerWhileNotFramed(t *testing.T) {
	e := NewEoT(16, DefaultPowerRatio)
	n := len(e.power)
	for i := 0; i < n*5; i++ {
		if e.Step(zeroBin(), zeroBin(), false) {
			t.Fatal("must never signal EoT before framing")
		}
	}
}

func TestEoT_CapturesReferenceThenTriggersOnDrop(t *testing.T) {
	e := NewEoT(16, DefaultPowerRatio)
	n := len(e.power)

	// First block: strong signal, framed -- captures the reference.
	for i := 0; i < n; i++ {
		if e.Step(strongBin(), zeroBin(), true) {
			t.Fatal("must not trigger on the block that captures the reference")
		}
	}
	if !e.captured {
		t.Fatal("expected reference power to be captured")
	}

	// Second block: still strong -- should not trigger.
	for i := 0; i < n; i++ {
		if e.Step(strongBin(), zeroBin(), true) {
			t.Fatal("must not trigger while signal power holds steady")
		}
	}

	// Third block: power collapses -- should trigger.
	triggered := false
	for i := 0; i < n; i++ {
		if e.Step(weakBin(), zeroBin(), true) {
			triggered = true
		}
	}
	if !triggered {
		t.Fatal("expected EoT to trigger once power dropped by more than the configured ratio")
	}
}
