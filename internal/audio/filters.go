package audio

import "math"

// DCFilter wraps a Source with a one-pole high-pass filter, removing the
// DC bias that a live capture device's input stage leaves behind before
// the signal ever reaches the discriminator.
type DCFilter struct {
	src   Source
	dc    float64
	ready bool
}

// NewDCFilter wraps src.
func NewDCFilter(src Source) *DCFilter {
	return &DCFilter{src: src}
}

func (f *DCFilter) SampleRate() int { return f.src.SampleRate() }
func (f *DCFilter) Live() bool      { return f.src.Live() }
func (f *DCFilter) Close() error    { return f.src.Close() }

const dcFilterAlpha = 0.999

// Read fills buf from the wrapped source and removes DC offset in place.
func (f *DCFilter) Read(buf []float64) (int, error) {
	n, err := f.src.Read(buf)
	if n == 0 {
		return n, err
	}
	if !f.ready {
		f.dc = buf[0]
		f.ready = true
	}
	for i := 0; i < n; i++ {
		f.dc = dcFilterAlpha*f.dc + (1-dcFilterAlpha)*buf[i]
		buf[i] -= f.dc
	}
	return n, err
}

// AGC wraps a Source with an automatic gain control that rescales each
// chunk to a target RMS, compensating for the wide signal-level swings
// between different cassette decks and cable runs.
type AGC struct {
	src       Source
	targetRMS float64
}

// NewAGC wraps src with a gain control targeting targetRMS.
func NewAGC(src Source, targetRMS float64) *AGC {
	return &AGC{src: src, targetRMS: targetRMS}
}

func (a *AGC) SampleRate() int { return a.src.SampleRate() }
func (a *AGC) Live() bool      { return a.src.Live() }
func (a *AGC) Close() error    { return a.src.Close() }

// Read fills buf from the wrapped source and rescales it in place.
func (a *AGC) Read(buf []float64) (int, error) {
	n, err := a.src.Read(buf)
	if n == 0 {
		return n, err
	}
	chunk := buf[:n]
	var sumSq float64
	for _, s := range chunk {
		sumSq += s * s
	}
	rms := math.Sqrt(sumSq / float64(n))
	if rms < 1e-10 {
		return n, err
	}
	gain := a.targetRMS / rms
	for i := range chunk {
		chunk[i] *= gain
	}
	return n, err
}
