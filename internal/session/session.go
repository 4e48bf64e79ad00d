// Package session drives the sample-level modem packages against an
// audio.Source or audio.Sink to record a byte stream out of a captured
// waveform, or play a byte stream into one.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cosby-modem/cosby/internal/audio"
	"github.com/cosby-modem/cosby/internal/dsp"
	"github.com/cosby-modem/cosby/internal/modem"
)

// ErrNoSignal is returned by Record when a live source has produced no
// framed preamble within Config.NoSignalTimeout, mirroring
// read_from_mic's give-up-after-silence behavior in the reference.
var ErrNoSignal = errors.New("session: no signal detected")

// Config holds the symbol geometry and detection tuning shared by Record
// and Play.
type Config struct {
	SampleRate      int
	BaseFreq        float64
	PowerRatio      float64
	NoSignalTimeout time.Duration
}

// DefaultConfig returns the geometry used by the reference implementation
// at its default sample rate: f0 = 1378 Hz, giving W = 32 and M = 16
// samples at 44100 Hz, a bit rate of about 2756 bits per second.
func DefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		BaseFreq:        1378.0,
		PowerRatio:      modem.DefaultPowerRatio,
		NoSignalTimeout: 30 * time.Second,
	}
}

// Event reports progress during Record, for a caller streaming status
// to a UI. Play reports no events.
type Event struct {
	Kind    string
	Message string
}

// Event kinds reported through the events channel.
const (
	EventFramed  = "framed"
	EventByte    = "byte"
	EventDone    = "done"
	EventNoSignal = "no_signal"
)

func emit(events chan<- Event, kind, msg string) {
	if events == nil {
		return
	}
	select {
	case events <- Event{Kind: kind, Message: msg}:
	default:
	}
}

// Record demodulates src sample by sample until the framer has locked
// and the end-of-transmission detector fires, or ctx is cancelled, or (for
// a live source) no preamble appears within Config.NoSignalTimeout, or (for
// a non-live source) the input runs out. It returns the recovered bytes.
func Record(ctx context.Context, src audio.Source, cfg Config, events chan<- Event) ([]byte, error) {
	g := dsp.NewGeometry(cfg.SampleRate, cfg.BaseFreq)
	window := dsp.NewWindow(g.Wavelength)
	probe := dsp.NewProbe(window)
	disc := modem.NewDiscriminator(g.SymbolLength)
	framer := modem.NewFramer()
	eot := modem.NewEoT(g.SymbolLength, cfg.PowerRatio)

	var out []byte
	framer.OnByte(func(b byte) {
		out = append(out, b)
		emit(events, EventByte, fmt.Sprintf("%02x", b))
	})
	framer.OnFramed(func() {
		emit(events, EventFramed, "preamble locked")
	})

	buf := dsp.NewBuffer(src, dsp.DefaultBufferSize)
	scratch := make([]float64, g.Wavelength)
	var bins [3]dsp.Bin

	maxWaitSamples := int(cfg.NoSignalTimeout.Seconds() * float64(cfg.SampleRate))

	for off := 0; ; off++ {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		if src.Live() && !framer.Framed() && maxWaitSamples > 0 && off >= maxWaitSamples {
			emit(events, EventNoSignal, "timed out waiting for signal")
			return out, ErrNoSignal
		}

		n, err := buf.ReadAt(off, g.Wavelength, scratch)
		if err != nil {
			return out, fmt.Errorf("session: record: %w", err)
		}
		if n == 0 && !src.Live() {
			break
		}

		probe.Compute(scratch, &bins)

		if bit, emitted := disc.Step(bins[1], bins[2]); emitted {
			framer.PushBit(bit)
		}

		if eot.Step(bins[1], bins[2], framer.Framed()) {
			emit(events, EventDone, "end of transmission detected")
			return out, nil
		}
	}

	return out, nil
}

// Play modulates data as FSK audio and writes it to sink.
func Play(data []byte, sink audio.Sink, cfg Config) error {
	g := dsp.NewGeometry(cfg.SampleRate, cfg.BaseFreq)
	mod := modem.NewModulator(g)
	return mod.Modulate(data, sink)
}
