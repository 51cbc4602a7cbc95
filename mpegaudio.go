// SPDX-License-Identifier: EPL-2.0

package mpegaudio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/mpegaudio/audio"
	"github.com/ik5/mpegaudio/formats/aiff"
	"github.com/ik5/mpegaudio/formats/mp3"
	"github.com/ik5/mpegaudio/formats/vorbis"
	"github.com/ik5/mpegaudio/formats/wav"
	"github.com/ik5/mpegaudio/mpa"
)

// ErrUnknownWriter is returned by NewWriter for formats it cannot produce.
var ErrUnknownWriter = errors.New("mpegaudio: no writer for format")

// NewRegistry returns a registry holding every decoder of the module,
// keyed by file extension. The MPEG decoder is registered last so that
// container formats win when sniffing; its probe scans for frame sync and
// is the most permissive.
func NewRegistry(opts mpa.Options) *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("ogg", vorbis.Decoder{})

	mpeg := mp3.Decoder{Options: opts}
	for _, ext := range []string{"mp3", "mp2", "mp1", "mpa"} {
		r.Register(ext, mpeg)
	}

	return r
}

// FormatOf returns the lower case extension of name without the dot.
func FormatOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Open picks a decoder for rs and opens it. The decoder registered for
// format is used when its probe accepts the content (or it has no probe);
// otherwise the registry is sniffed. The chosen format key is returned.
func Open(reg *audio.Registry, rs io.ReadSeeker, format string) (audio.Source, string, error) {
	d, ok := reg.Get(format)
	if ok {
		if p, isProber := d.(audio.Prober); isProber && !p.Probe(rs) {
			ok = false
		}
	}
	if !ok {
		format, d, ok = reg.Sniff(rs)
	}
	if !ok {
		return nil, "", audio.ErrUnknownFormat
	}

	src, err := d.Decode(rs)
	if err != nil {
		return nil, format, err
	}

	return src, format, nil
}

// File is a Source opened from disk. Close releases both.
type File struct {
	audio.Source

	// Format is the registry key the file was decoded with.
	Format string

	f *os.File
}

// OpenFile opens name with the decoders of NewRegistry(opts).
func OpenFile(name string, opts mpa.Options) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	src, format, err := Open(NewRegistry(opts), f, FormatOf(name))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &File{Source: src, Format: format, f: f}, nil
}

func (f *File) Close() error {
	return errors.Join(f.Source.Close(), f.f.Close())
}

// Writer is a file Sink. Close finishes the headers but leaves the
// underlying io.WriteSeeker open.
type Writer interface {
	audio.Sink
	Frames() int64
	Close() error
}

// NewWriter returns a 16-bit PCM writer for format ("wav", "aiff" or
// "aif").
func NewWriter(format string, w io.WriteSeeker, sampleRate, channels int) (Writer, error) {
	switch format {
	case "wav":
		return wav.NewWriter(w, sampleRate, channels), nil
	case "aiff", "aif":
		return aiff.NewWriter(w, sampleRate, channels), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWriter, format)
	}
}
