package dsp

import (
	"math"
	"testing"
)

func TestProbe_PureToneAtF0DominatesBin1(t *testing.T) {
	const w = 32
	window := NewWindow(w)
	probe := NewProbe(window)

	samples := make([]float64, w)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * float64(i) / float64(w))
	}

	var bins [3]Bin
	probe.Compute(samples, &bins)

	if bins[1].Mag() <= bins[0].Mag() || bins[1].Mag() <= bins[2].Mag() {
		t.Fatalf("expected bin 1 to dominate for a tone at f0: bins=%v", bins)
	}
}

func TestProbe_PureToneAt2F0DominatesBin2(t *testing.T) {
	const w = 32
	window := NewWindow(w)
	probe := NewProbe(window)

	samples := make([]float64, w)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 2 * float64(i) / float64(w))
	}

	var bins [3]Bin
	probe.Compute(samples, &bins)

	if bins[2].Mag() <= bins[0].Mag() || bins[2].Mag() <= bins[1].Mag() {
		t.Fatalf("expected bin 2 to dominate for a tone at 2f0: bins=%v", bins)
	}
}

func TestProbe_Silence(t *testing.T) {
	const w = 32
	probe := NewProbe(NewWindow(w))
	samples := make([]float64, w)

	var bins [3]Bin
	probe.Compute(samples, &bins)
	for k, b := range bins {
		if b.MagSq() != 0 {
			t.Fatalf("bin %d of silence = %v, want zero power", k, b)
		}
	}
}
