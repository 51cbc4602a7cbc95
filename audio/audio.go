// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"sync"
)

// Source streams interleaved float32 PCM.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1] and
	// returns the number of values written, not frames. n == 0 with
	// io.EOF ends the stream.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Prober is implemented by decoders that can recognise their format from
// content. Probe must leave the read position of r unchanged.
type Prober interface {
	Probe(r io.ReadSeeker) bool
}

// Registry maps format keys ("mp3", "ogg") to decoders.
type Registry struct {
	codecs map[string]Decoder
	order  []string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register adds or replaces the decoder for format.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.codecs[format]; !ok {
		r.order = append(r.order, format)
	}
	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered keys in registration order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Clone(r.order)
}

// Sniff asks every decoder implementing Prober, in registration order,
// whether it recognises rs. The read position is restored after each
// probe.
func (r *Registry) Sniff(rs io.ReadSeeker) (string, Decoder, bool) {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", nil, false
	}

	for _, format := range r.Formats() {
		d, _ := r.Get(format)
		p, ok := d.(Prober)
		if !ok {
			continue
		}

		found := p.Probe(rs)
		if _, err := rs.Seek(start, io.SeekStart); err != nil {
			return "", nil, false
		}
		if found {
			return format, d, true
		}
	}

	return "", nil, false
}
