// Package audio provides the pull-model Source and push-model Sink
// adapters that connect the modem to a WAV file or a live PortAudio
// device, keeping device and file I/O out of the DSP and modem packages.
package audio

// Source is a pull-model real-valued mono sample source at a fixed
// sample rate. Read may return fewer samples than len(buf) to signal
// end of input; callers needing a fixed-size window are responsible
// for any zero-fill (dsp.Buffer does this).
type Source interface {
	Read(buf []float64) (n int, err error)
	SampleRate() int

	// Live reports whether this source is a real-time hardware capture,
	// for which the caller should apply a no-signal timeout.
	Live() bool

	Close() error
}

// Sink is a push-model destination for real-valued samples in [-1, 1].
type Sink interface {
	Write(samples []float64) error
	Close() error
}
