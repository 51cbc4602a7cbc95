// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/mpegaudio/utils"
)

// Pump pulls blocks from src into sink until the end of the stream or
// until ctx is done, and returns the number of sample frames delivered.
// Events are derived from the blocks: a changed bitrate, a jump in
// position or a resync. ctx is only checked between blocks.
func Pump(ctx context.Context, src BlockSource, sink Sink) (int64, error) {
	var (
		frames int64
		prev   Block
		first  = true
	)

	for {
		if err := ctx.Err(); err != nil {
			return frames, err
		}

		b, err := src.DecodeNextBlock()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("audio: pump: %w", err)
		}

		if b.Recovered {
			sink.Notify(Event{Kind: EventResync, Position: b.Position})
		}
		if b.Bitrate != 0 && (first || b.Bitrate != prev.Bitrate) {
			sink.Notify(Event{Kind: EventBitrate, Bitrate: b.Bitrate, Position: b.Position})
		}
		if !first {
			if d := b.Position - (prev.Position + prev.Duration()); d > time.Millisecond || d < -time.Millisecond {
				sink.Notify(Event{Kind: EventPosition, Position: b.Position})
			}
		}

		if err := sink.WriteBlock(b); err != nil {
			return frames, err
		}
		frames += int64(b.Frames())
		prev, first = b, false
	}
}

// BlockReader exposes a BlockSource as a float32 Source. Blocks must keep
// the sample rate and channel count given to NewBlockReader.
type BlockReader struct {
	src      BlockSource
	rate     int
	channels int

	pending []int16
	err     error
}

func NewBlockReader(src BlockSource, rate, channels int) *BlockReader {
	return &BlockReader{src: src, rate: rate, channels: channels}
}

func (r *BlockReader) SampleRate() int { return r.rate }
func (r *BlockReader) Channels() int   { return r.channels }
func (r *BlockReader) BufSize() int    { return 1152 * r.channels }

// Close closes the block source when it is an io.Closer.
func (r *BlockReader) Close() error {
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// Reset drops buffered samples and a pending error, for use after the
// block source was repositioned.
func (r *BlockReader) Reset() {
	r.pending = nil
	r.err = nil
}

func (r *BlockReader) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	n := 0
	for n < len(dst) {
		if len(r.pending) == 0 {
			if r.err != nil {
				if n > 0 {
					return n, nil
				}
				return 0, r.err
			}

			b, err := r.src.DecodeNextBlock()
			if err != nil {
				r.err = err
				continue
			}
			if b.Channels != r.channels || b.SampleRate != r.rate {
				r.err = fmt.Errorf("%w: %d Hz x%d", ErrFormatChanged, b.SampleRate, b.Channels)
				continue
			}
			r.pending = b.PCM
		}

		k := min(len(dst)-n, len(r.pending))
		utils.PCM16ToFloat32(dst[n:n+k], r.pending[:k])
		r.pending = r.pending[k:]
		n += k
	}

	return n, nil
}

// SourceBlocks cuts a float32 Source into 16-bit blocks of a fixed number
// of frames.
type SourceBlocks struct {
	src     Source
	buf     []float32
	pcm     []int16
	pos     int64 // frames delivered
	done    bool
	tailErr error

	// Clipped counts samples outside [-1,1].
	Clipped int
}

func NewSourceBlocks(src Source, frames int) *SourceBlocks {
	if frames <= 0 {
		frames = 1152
	}

	return &SourceBlocks{src: src, buf: make([]float32, frames*src.Channels())}
}

// DecodeNextBlock reads the next block. The PCM slice is reused by the
// following call.
func (s *SourceBlocks) DecodeNextBlock() (Block, error) {
	if s.done {
		return Block{}, s.tailErr
	}

	n, err := s.src.ReadSamples(s.buf)
	if err != nil {
		s.done = true
		s.tailErr = err
		if !errors.Is(err, io.EOF) {
			s.tailErr = fmt.Errorf("audio: read samples: %w", err)
		}
	}
	if n == 0 {
		if !s.done {
			s.done, s.tailErr = true, io.EOF
		}

		return Block{}, s.tailErr
	}

	if cap(s.pcm) < n {
		s.pcm = make([]int16, len(s.buf))
	}
	s.pcm = s.pcm[:n]
	s.Clipped += utils.Float32ToPCM16(s.pcm, s.buf[:n])

	ch, rate := s.src.Channels(), s.src.SampleRate()
	b := Block{
		PCM:        s.pcm,
		SampleRate: rate,
		Channels:   ch,
		Position:   time.Duration(s.pos) * time.Second / time.Duration(rate),
	}
	s.pos += int64(n / ch)

	return b, nil
}

func (s *SourceBlocks) Close() error { return s.src.Close() }
