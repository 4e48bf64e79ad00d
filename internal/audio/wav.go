package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSource decodes mono 16-bit PCM samples from a WAV file at a fixed
// sample rate. Other rates, channel counts, or bit depths are rejected
// up front rather than resampled or downmixed, per the wire format's
// requirement that file-backed I/O exactly match the session geometry.
type WAVSource struct {
	file    *os.File
	rate    int
	samples []float64
	pos     int
}

// OpenWAVSource opens path and decodes it fully into memory.
func OpenWAVSource(path string, wantRate int) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("open wav: not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read wav: %w", err)
	}

	if int(dec.SampleRate) != wantRate {
		f.Close()
		return nil, fmt.Errorf("open wav: sample rate %d, want %d", dec.SampleRate, wantRate)
	}
	if dec.NumChans != 1 {
		f.Close()
		return nil, fmt.Errorf("open wav: %d channels, want mono", dec.NumChans)
	}
	if dec.BitDepth != 16 {
		f.Close()
		return nil, fmt.Errorf("open wav: %d-bit samples, want 16-bit", dec.BitDepth)
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / 32768.0
	}

	return &WAVSource{file: f, rate: int(dec.SampleRate), samples: samples}, nil
}

func (s *WAVSource) SampleRate() int { return s.rate }
func (s *WAVSource) Live() bool      { return false }
func (s *WAVSource) Close() error    { return s.file.Close() }

// Read copies up to len(buf) remaining samples, returning fewer than
// len(buf) (down to 0) once the file is exhausted.
func (s *WAVSource) Read(buf []float64) (int, error) {
	n := copy(buf, s.samples[s.pos:])
	s.pos += n
	return n, nil
}

// WAVSink encodes mono 16-bit PCM samples to a WAV file.
type WAVSink struct {
	file    *os.File
	encoder *wav.Encoder
	rate    int
}

// CreateWAVSink creates path and prepares it for mono 16-bit PCM output
// at rate.
func CreateWAVSink(path string, rate int) (*WAVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create wav: %w", err)
	}
	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	return &WAVSink{file: f, encoder: enc, rate: rate}, nil
}

// Write encodes samples (clamped to [-1, 1]) as signed 16-bit PCM.
func (s *WAVSink) Write(samples []float64) error {
	ib := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: s.rate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		ib.Data[i] = int(v * 32767)
	}
	return s.encoder.Write(ib)
}

// Close flushes the WAV header and closes the underlying file.
func (s *WAVSink) Close() error {
	if err := s.encoder.Close(); err != nil {
		s.file.Close()
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return s.file.Close()
}
