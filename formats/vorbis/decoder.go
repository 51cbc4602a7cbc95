// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/mpegaudio/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of values, always a multiple of Channels.
	Read([]float32) (int, error)
	Length() int64
	SetPosition(int64) error
}

// Info describes an opened Ogg Vorbis stream.
type Info struct {
	SampleRate int
	Channels   int
	// Bitrate is the nominal bitrate in bits per second, 0 when unset.
	Bitrate  int
	Samples  int64 // 0 when the input cannot seek
	Duration time.Duration
	Vendor   string
	Comments []string
}

// Source streams decoded Vorbis samples.
type Source struct {
	dec  oggReader
	info Info
}

func (s *Source) SampleRate() int { return s.info.SampleRate }
func (s *Source) Channels() int   { return s.info.Channels }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Info() Info      { return s.info }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.info.Channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("vorbis: %w", err)
	}

	return n, err
}

// Seek moves to a fraction (0..1) of the stream. The input must have
// been seekable when the source was opened.
func (s *Source) Seek(fraction float64) error {
	if s.info.Samples <= 0 {
		return ErrNotSeekable
	}
	fraction = max(0, min(1, fraction))
	if err := s.dec.SetPosition(int64(fraction * float64(s.info.Samples))); err != nil {
		return fmt.Errorf("vorbis: %w", err)
	}

	return nil
}

type Decoder struct{}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	return d.Open(r)
}

// Open returns the concrete source, which adds Info and Seek.
func (Decoder) Open(r io.Reader) (*Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}

	info := Info{
		SampleRate: dec.SampleRate(),
		Channels:   dec.Channels(),
		Bitrate:    dec.Bitrate().Nominal,
		Samples:    dec.Length(),
		Vendor:     dec.CommentHeader().Vendor,
		Comments:   dec.CommentHeader().Comments,
	}

	return newSource(dec, info), nil
}

func newSource(dec oggReader, info Info) *Source {
	if info.SampleRate > 0 {
		info.Duration = time.Duration(info.Samples) * time.Second / time.Duration(info.SampleRate)
	}

	return &Source{dec: dec, info: info}
}

// identification is the start of the first Vorbis header packet.
var identification = []byte("\x01vorbis")

// Probe reports whether r starts with an Ogg page carrying a Vorbis
// identification header. The read position is restored.
func (Decoder) Probe(r io.ReadSeeker) bool {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}
	defer func() { _, _ = r.Seek(cur, io.SeekStart) }()

	// 27 byte page header, up to 255 lacing values, then the packet
	b := make([]byte, 27+255+len(identification))
	n, _ := io.ReadFull(r, b)
	b = b[:n]
	if len(b) < 27 || !bytes.Equal(b[:4], []byte("OggS")) || b[4] != 0 {
		return false
	}

	p := 27 + int(b[26])

	return len(b) >= p+len(identification) && bytes.Equal(b[p:p+len(identification)], identification)
}
