// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// Info describes an opened stream, taken from its first frame and, when
// present, its VBR tag.
type Info struct {
	Version    Version
	Layer      int
	Mode       ChannelMode
	SampleRate int
	// Channels is the number of PCM channels DecodeNextBlock delivers,
	// which is 1 for mono streams and when Options pick a single channel.
	Channels int
	// Bitrate is the nominal bitrate for CBR streams and the average for
	// VBR ones, in bits per second.
	Bitrate         int
	VBR             bool
	FreeFormat      bool
	SamplesPerFrame int
	// Frames is the number of audio frames, exact when a VBR tag says so
	// and estimated from the byte length otherwise.
	Frames   int
	Samples  int64
	Duration time.Duration

	EncoderDelay   int
	EncoderPadding int

	// Offset is the byte position of the first audio frame.
	Offset    int64
	VBRHeader *VBRHeader
	Tag       *Tag
}

// Stats counts what happened while decoding.
type Stats struct {
	Frames          int
	Resyncs         int
	SkippedGranules int // main data lost to reservoir underflow
	CorruptGranules int
	CorruptFrames   int
	Truncated       int
	Clipped         int
}

// Block is the PCM of one decoded frame.
type Block struct {
	// PCM holds interleaved samples. It is reused by the next call to
	// DecodeNextBlock.
	PCM        []int16
	Channels   int
	SampleRate int
	Header     Header
	// Position is the playback time of the first sample.
	Position time.Duration
	// Recovered is set on the first block after a resync.
	Recovered bool
}

// Frames returns the number of sample frames in b.
func (b Block) Frames() int {
	if b.Channels == 0 {
		return 0
	}

	return len(b.PCM) / b.Channels
}

// Stream decodes MPEG audio frames from a seekable byte stream.
type Stream struct {
	opts  Options
	src   *source
	sync  *synchronizer
	fr    frameReader
	dec   *decoder
	info  Info
	stats Stats

	tagOffset int64 // first frame, the VBR tag frame included
	first     int64 // first audio frame
	meanSize  float64

	pos       int64 // sample frames before the next block
	skip      int   // sample frames still to drop at the start
	remaining int64 // sample frames left to deliver, -1 when unbounded
}

// Probe reports whether r looks like an MPEG audio stream. The read
// position of r is restored.
func Probe(r io.ReadSeeker) bool {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}
	defer func() { _, _ = r.Seek(cur, io.SeekStart) }()

	src, err := newSource(r)
	if err != nil {
		return false
	}
	if _, err := locate(src); err != nil {
		return false
	}
	s := &synchronizer{src: src, checkFrames: DefaultCheckFrames, scanLimit: DefaultScanLimit}
	_, _, err = s.find(src.start, nil)

	return err == nil
}

// locate narrows src to the audio byte range, stepping into a RIFF/WAVE
// data chunk or leaving out leading ID3v2 and trailing ID3v1 tags.
func locate(src *source) (*Tag, error) {
	off, n, ok, err := unwrapRIFF(src.r, 0)
	if ok {
		if err != nil {
			return nil, err
		}
		src.start, src.end = off, min(off+n, src.size)

		return nil, nil
	}

	for {
		b, err := src.readRaw(src.start, id3v2HeaderSize)
		if err != nil {
			return nil, err
		}
		n, ok := id3v2Size(b)
		if !ok || src.start+int64(n) > src.size {
			break
		}
		src.start += int64(n)
	}

	if src.size-src.start < id3v1Size {
		return nil, nil
	}
	b, err := src.readRaw(src.size-id3v1Size, id3v1Size)
	if err != nil {
		return nil, err
	}
	tag, ok := parseID3v1(b)
	if ok {
		src.end = src.size - id3v1Size
	}

	return tag, nil
}

// Open locks onto the first frame sequence of r and prepares decoding.
func Open(r io.ReadSeeker, opts Options) (*Stream, error) {
	opts = opts.withDefaults()

	src, err := newSource(r)
	if err != nil {
		return nil, err
	}
	tag, err := locate(src)
	if err != nil {
		return nil, fmt.Errorf("mpa: open: %w", err)
	}

	sync := &synchronizer{src: src, checkFrames: opts.CheckFrames, scanLimit: opts.ScanLimit}
	off, h, err := sync.find(src.start, nil)
	if err != nil {
		return nil, fmt.Errorf("mpa: open: %w", err)
	}

	s := &Stream{
		opts:      opts,
		src:       src,
		sync:      sync,
		tagOffset: off,
		first:     off,
		remaining: -1,
	}
	s.dec = newDecoder(opts, &s.stats)
	s.fr = frameReader{src: src, sync: sync, log: opts.Logger, ref: h, pos: off}

	b, err := src.readAt(off, h.Size)
	if err != nil {
		return nil, fmt.Errorf("mpa: open: %w", err)
	}
	vbr, _ := parseVBRHeader(h, b)
	if vbr != nil {
		s.first = off + int64(h.Size)
		s.fr.pos = s.first
	}

	s.info = s.describe(h, vbr, tag)
	if opts.Gapless && vbr != nil && vbr.HasLAME() {
		s.skip = vbr.EncoderDelay + DecoderDelay
		s.remaining = s.info.Samples
	}

	opts.Logger.Debug("mpa: opened", "header", h.String(), "offset", off, "vbr", vbr != nil)

	return s, nil
}

func meanFrameSize(h Header) float64 {
	if h.FreeFormat() {
		return float64(h.unpaddedSize())
	}

	return float64(h.SamplesPerFrame()) / 8 * float64(h.Bitrate()*1000) / float64(h.SampleRate())
}

func (s *Stream) describe(h Header, vbr *VBRHeader, tag *Tag) Info {
	info := Info{
		Version:         h.Version,
		Layer:           h.Layer,
		Mode:            h.Mode,
		SampleRate:      h.SampleRate(),
		Channels:        s.dec.outChannels(h),
		Bitrate:         h.Bitrate() * 1000,
		FreeFormat:      h.FreeFormat(),
		SamplesPerFrame: h.SamplesPerFrame(),
		Offset:          s.first,
		VBRHeader:       vbr,
		Tag:             tag,
	}

	s.meanSize = meanFrameSize(h)
	audioBytes := s.src.end - s.first
	if vbr != nil && vbr.Frames > 0 {
		info.Frames = vbr.Frames
		info.VBR = vbr.Kind != "Info"
	} else if s.meanSize > 0 {
		info.Frames = int(math.Round(float64(audioBytes) / s.meanSize))
	}

	info.Samples = int64(info.Frames) * int64(info.SamplesPerFrame)
	if vbr != nil && vbr.HasLAME() {
		info.EncoderDelay = vbr.EncoderDelay
		info.EncoderPadding = vbr.EncoderPadding
		if s.opts.Gapless {
			info.Samples = max(info.Samples-int64(vbr.EncoderDelay+vbr.EncoderPadding), 0)
		}
	}
	info.Duration = time.Duration(info.Samples) * time.Second / time.Duration(info.SampleRate)

	if info.Frames > 0 {
		if info.VBR || info.FreeFormat {
			sec := float64(info.Frames*info.SamplesPerFrame) / float64(info.SampleRate)
			info.Bitrate = int(math.Round(float64(audioBytes) * 8 / sec))
		}
		s.meanSize = float64(audioBytes) / float64(info.Frames)
	}

	return info
}

// Info returns the stream description.
func (s *Stream) Info() Info { return s.info }

// Stats returns the decoding counters so far.
func (s *Stream) Stats() Stats {
	st := s.stats
	st.Resyncs = s.fr.resyncs

	return st
}

// Position returns the playback time of the next block.
func (s *Stream) Position() time.Duration {
	return time.Duration(s.pos) * time.Second / time.Duration(s.info.SampleRate)
}

// DecodeNextBlock decodes the next frame. It returns io.EOF at the end
// of the stream or when sync cannot be recovered. Damaged frames are not
// errors: they are counted in Stats and decode to silence.
func (s *Stream) DecodeNextBlock() (Block, error) {
	for {
		if s.remaining == 0 {
			return Block{}, io.EOF
		}

		f, err := s.fr.next()
		if errors.Is(err, ErrTruncated) {
			s.opts.Logger.Debug("mpa: final frame dropped", "err", err)
			s.stats.Truncated++
			return Block{}, io.EOF
		}
		if err != nil {
			return Block{}, err
		}
		s.stats.Frames++
		if f.truncated {
			s.stats.Truncated++
		}

		nch := s.dec.outChannels(f.Header)
		pcm := s.trim(s.dec.decodeFrame(&f), nch)
		if len(pcm) == 0 {
			continue
		}

		start := s.pos
		s.pos += int64(len(pcm) / nch)

		return Block{
			PCM:        pcm,
			Channels:   nch,
			SampleRate: f.SampleRate(),
			Header:     f.Header,
			Position:   time.Duration(start) * time.Second / time.Duration(f.SampleRate()),
			Recovered:  f.recovered,
		}, nil
	}
}

// trim drops the gapless delay at the start and padding at the end.
func (s *Stream) trim(pcm []int16, nch int) []int16 {
	if s.skip > 0 {
		d := min(s.skip, len(pcm)/nch)
		pcm = pcm[d*nch:]
		s.skip -= d
	}
	if s.remaining >= 0 {
		if n := int64(len(pcm) / nch); n > s.remaining {
			pcm = pcm[:s.remaining*int64(nch)]
		}
		s.remaining -= int64(len(pcm) / nch)
	}

	return pcm
}

// Seek moves to a fraction (0..1) of the stream duration. VBR streams
// with a TOC are positioned through it; others by byte interpolation.
// Decoder history is dropped, so the first frames after a seek into the
// middle of a Layer III stream may be silent.
func (s *Stream) Seek(fraction float64) error {
	if s.info.Frames == 0 || s.src.length() <= 0 {
		return ErrNotSeekable
	}
	fraction = math.Max(0, math.Min(1, fraction))

	base, size := s.first, s.src.end-s.first
	byteFrac := fraction
	tocUsed := false
	if v := s.info.VBRHeader; v != nil {
		if bf, ok := v.seekOffset(fraction); ok {
			byteFrac, tocUsed = bf, true
			base = s.tagOffset
			if v.Bytes > 0 {
				size = int64(v.Bytes)
			} else {
				size = s.src.end - s.tagOffset
			}
		}
	}

	target := max(base+int64(byteFrac*float64(size)), s.first)
	if err := s.fr.seek(target); err != nil {
		if errors.Is(err, ErrNoSync) {
			s.fr.pos = s.src.end
			s.pos = s.info.Samples
			return nil
		}
		return fmt.Errorf("mpa: seek: %w", err)
	}
	s.dec.reset()

	var frame int64
	if tocUsed {
		frame = int64(math.Round(fraction * float64(s.info.Frames)))
	} else {
		frame = int64(math.Round(float64(s.fr.pos-s.first) / s.meanSize))
	}
	s.pos = frame * int64(s.info.SamplesPerFrame)

	if v := s.info.VBRHeader; s.opts.Gapless && v != nil && v.HasLAME() {
		lead := int64(v.EncoderDelay + DecoderDelay)
		if s.pos == 0 {
			s.skip = int(lead)
			s.remaining = s.info.Samples
		} else {
			s.skip = 0
			s.remaining = max(s.info.Samples+lead-s.pos, 0)
			s.pos = max(s.pos-lead, 0)
		}
	}

	return nil
}

// SeekTime moves to the frame covering d.
func (s *Stream) SeekTime(d time.Duration) error {
	if s.info.Duration <= 0 {
		return ErrNotSeekable
	}

	return s.Seek(float64(d) / float64(s.info.Duration))
}
