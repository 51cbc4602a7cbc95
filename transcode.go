// SPDX-License-Identifier: EPL-2.0

package mpegaudio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/mpegaudio/audio"
	"github.com/ik5/mpegaudio/formats/mp3"
	"github.com/ik5/mpegaudio/utils"
)

// Result describes a finished Transcode.
type Result struct {
	Frames  int64 // sample frames delivered to the sink
	Clipped int   // samples clamped to 16 bits
}

// Transcode pumps src into sink at rate and channels (0 keeps the source
// value). An MPEG source that needs no conversion is pumped block by block,
// so the sink also sees its bitrate and resync events; anything else goes
// through an audio.Converter first. src must not have been partially read.
func Transcode(ctx context.Context, src audio.Source, sink audio.Sink, rate, channels int) (Result, error) {
	if f, ok := src.(*File); ok {
		src = f.Source
	}

	if ms, ok := src.(*mp3.Source); ok && keeps(ms, rate, channels) {
		n, err := audio.Pump(ctx, ms.Blocks(), sink)
		return Result{Frames: n, Clipped: ms.Stats().Clipped}, err
	}

	var in audio.Source = src
	if !keeps(src, rate, channels) {
		in = audio.NewConverter(src, rate, channels)
	}

	blocks := audio.NewSourceBlocks(in, 0)
	n, err := audio.Pump(ctx, blocks, sink)

	return Result{Frames: n, Clipped: blocks.Clipped}, err
}

func keeps(src audio.Source, rate, channels int) bool {
	return (rate == 0 || rate == src.SampleRate()) && (channels == 0 || channels == src.Channels())
}

// PCM16 reads all of src as interleaved 16-bit samples at rate and
// channels (0 keeps the source value).
func PCM16(src audio.Source, rate, channels int) ([]int16, error) {
	in := src
	if !keeps(src, rate, channels) {
		in = audio.NewConverter(src, rate, channels)
	}

	var out []int16
	size := max(in.BufSize(), 1024)
	buf := make([]float32, size-size%in.Channels())
	for {
		n, err := in.ReadSamples(buf)
		if n > 0 {
			out = append(out, make([]int16, n)...)
			utils.Float32ToPCM16(out[len(out)-n:], buf[:n])
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("mpegaudio: %w", err)
		}
	}
}
