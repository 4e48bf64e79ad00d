package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// DefaultChunkFrames is the frame count used for each device read/write,
// chosen small enough to keep demodulation latency low.
const DefaultChunkFrames = 1024

// Init initializes PortAudio. Must be called once before opening any
// device Source or Sink, and matched with a deferred Terminate.
func Init() error { return portaudio.Initialize() }

// Terminate releases PortAudio's resources.
func Terminate() error { return portaudio.Terminate() }

// DeviceSource captures live stereo input and keeps only the left
// channel, matching the cassette cable's wiring (data on one channel,
// remote/motor control on the other).
type DeviceSource struct {
	stream *portaudio.Stream
	buf    []float32
	rate   int
	chunk  int
}

// OpenDeviceSource opens the default input device at sampleRate.
func OpenDeviceSource(sampleRate, chunkFrames int) (*DeviceSource, error) {
	if chunkFrames <= 0 {
		chunkFrames = DefaultChunkFrames
	}
	buf := make([]float32, chunkFrames*2)
	stream, err := portaudio.OpenDefaultStream(2, 0, float64(sampleRate), chunkFrames, buf)
	if err != nil {
		return nil, fmt.Errorf("open input device: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("start input device: %w", err)
	}
	return &DeviceSource{stream: stream, buf: buf, rate: sampleRate, chunk: chunkFrames}, nil
}

func (d *DeviceSource) SampleRate() int { return d.rate }
func (d *DeviceSource) Live() bool      { return true }

func (d *DeviceSource) Close() error {
	if err := d.stream.Stop(); err != nil {
		d.stream.Close()
		return fmt.Errorf("stop input device: %w", err)
	}
	return d.stream.Close()
}

// Read blocks until len(out) samples have been captured, retrying the
// device once on a transient read error before giving up.
func (d *DeviceSource) Read(out []float64) (int, error) {
	filled := 0
	retried := false
	for filled < len(out) {
		if err := d.stream.Read(); err != nil {
			if retried {
				return filled, fmt.Errorf("read input device: %w", err)
			}
			retried = true
			if rerr := d.stream.Start(); rerr != nil {
				return filled, fmt.Errorf("read input device: %w", err)
			}
			continue
		}
		for i := 0; i < d.chunk && filled < len(out); i++ {
			out[filled] = float64(d.buf[i*2])
			filled++
		}
	}
	return filled, nil
}

// DeviceSink plays mono audio out the default output device.
type DeviceSink struct {
	stream *portaudio.Stream
	buf    []float32
	rate   int
	chunk  int
}

// OpenDeviceSink opens the default output device at sampleRate.
func OpenDeviceSink(sampleRate, chunkFrames int) (*DeviceSink, error) {
	if chunkFrames <= 0 {
		chunkFrames = DefaultChunkFrames
	}
	buf := make([]float32, chunkFrames)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), chunkFrames, buf)
	if err != nil {
		return nil, fmt.Errorf("open output device: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("start output device: %w", err)
	}
	return &DeviceSink{stream: stream, buf: buf, rate: sampleRate, chunk: chunkFrames}, nil
}

// Write plays samples in chunkFrames-sized pieces, zero-padding the
// final short piece.
func (d *DeviceSink) Write(samples []float64) error {
	for off := 0; off < len(samples); off += d.chunk {
		end := off + d.chunk
		n := d.chunk
		if end > len(samples) {
			end = len(samples)
			n = end - off
		}
		for i := 0; i < n; i++ {
			d.buf[i] = float32(samples[off+i])
		}
		for i := n; i < d.chunk; i++ {
			d.buf[i] = 0
		}
		if err := d.stream.Write(); err != nil {
			if rerr := d.stream.Start(); rerr != nil {
				return fmt.Errorf("write output device: %w", err)
			}
		}
	}
	return nil
}

// Close stops and releases the output stream -- unlike the reference
// implementation's speaker path, which never closed the soundcard.
func (d *DeviceSink) Close() error {
	if err := d.stream.Stop(); err != nil {
		d.stream.Close()
		return fmt.Errorf("stop output device: %w", err)
	}
	return d.stream.Close()
}
