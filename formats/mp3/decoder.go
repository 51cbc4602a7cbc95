// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/mpegaudio/audio"
	"github.com/ik5/mpegaudio/mpa"
)

// Decoder opens MPEG audio Layer I, II and III streams. The zero value
// decodes every channel with default sync settings.
type Decoder struct {
	Options mpa.Options
}

// Decode opens r as an audio.Source. Readers that cannot seek are read
// into memory first.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	return d.Open(r)
}

// Open is Decode with the concrete type, which adds Info, Stats and Seek.
func (d Decoder) Open(r io.Reader) (*Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("mp3: read: %w", err)
		}
		rs = bytes.NewReader(b)
	}

	st, err := mpa.Open(rs, d.Options)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	blocks := &Blocks{stream: st}
	info := st.Info()

	return &Source{
		BlockReader: audio.NewBlockReader(blocks, info.SampleRate, info.Channels),
		blocks:      blocks,
	}, nil
}

// Probe reports whether r holds MPEG audio, leaving its position alone.
func (Decoder) Probe(r io.ReadSeeker) bool { return mpa.Probe(r) }

// Blocks adapts an mpa.Stream to audio.BlockSource.
type Blocks struct {
	stream *mpa.Stream
}

// NewBlocks wraps an opened stream.
func NewBlocks(st *mpa.Stream) *Blocks { return &Blocks{stream: st} }

func (b *Blocks) DecodeNextBlock() (audio.Block, error) {
	blk, err := b.stream.DecodeNextBlock()
	if err != nil {
		return audio.Block{}, err
	}

	return audio.Block{
		PCM:        blk.PCM,
		SampleRate: blk.SampleRate,
		Channels:   blk.Channels,
		Bitrate:    blk.Header.Bitrate() * 1000,
		Position:   blk.Position,
		Recovered:  blk.Recovered,
	}, nil
}

// Stream returns the underlying decoder stream.
func (b *Blocks) Stream() *mpa.Stream { return b.stream }

// Source is the audio.Source of an MPEG audio stream. Samples keep the
// stream's channel count, or one channel when Options ask for it.
type Source struct {
	*audio.BlockReader
	blocks *Blocks
}

func (s *Source) Info() mpa.Info   { return s.blocks.stream.Info() }
func (s *Source) Stats() mpa.Stats { return s.blocks.stream.Stats() }

// Blocks returns the block level view of the same stream.
func (s *Source) Blocks() *Blocks { return s.blocks }

// Seek moves to a fraction (0..1) of the duration.
func (s *Source) Seek(fraction float64) error {
	if err := s.blocks.stream.Seek(fraction); err != nil {
		return fmt.Errorf("mp3: %w", err)
	}
	s.Reset()

	return nil
}
