// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"encoding/binary"
	"fmt"
)

// Version is the MPEG audio version of a frame.
type Version int

const (
	MPEG1 Version = iota
	MPEG2
	MPEG25
)

func (v Version) String() string {
	switch v {
	case MPEG1:
		return "MPEG-1"
	case MPEG2:
		return "MPEG-2"
	case MPEG25:
		return "MPEG-2.5"
	}

	return fmt.Sprintf("Version(%d)", int(v))
}

// ChannelMode is the channel mode field of a header.
type ChannelMode int

const (
	Stereo ChannelMode = iota
	JointStereo
	DualChannel
	Mono
)

func (m ChannelMode) String() string {
	switch m {
	case Stereo:
		return "stereo"
	case JointStereo:
		return "joint stereo"
	case DualChannel:
		return "dual channel"
	case Mono:
		return "mono"
	}

	return fmt.Sprintf("ChannelMode(%d)", int(m))
}

// Mode extension bits for Layer III joint stereo.
const (
	modeExtIntensity = 1
	modeExtMS        = 2
)

const (
	headerSize = 4
	crcSize    = 2

	// maxFrameSize bounds free format frames and the reservoir.
	maxFrameSize = 4096

	// syncMask selects the fields that must not change within a stream:
	// sync, version, layer and sampling frequency.
	syncMask = 0xfffe0c00
)

// kbps, indexed by [lsf][layer-1][index]
var bitrateTable = [2][3][16]int{
	{
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320},
	},
	{
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},
	},
}

// indexed by Version*3 + sampling frequency field
var sampleRateTable = [9]int{44100, 48000, 32000, 22050, 24000, 16000, 11025, 12000, 8000}

// Header is a decoded 32-bit frame header plus the layout derived from it.
type Header struct {
	Version       Version
	Layer         int // 1, 2 or 3
	Protected     bool
	BitrateIndex  int
	FreqIndex     int // 0..8, into the combined rate table
	Padding       bool
	Private       bool
	Mode          ChannelMode
	ModeExtension int
	Copyright     bool
	Original      bool
	Emphasis      int

	// Size is the full frame length in bytes, header included. It is
	// zero for a free format header until the synchronizer measures it.
	Size int

	raw uint32
}

// ParseHeader validates and decodes a big-endian header word.
func ParseHeader(word uint32) (Header, error) {
	if word&0xffe00000 != 0xffe00000 {
		return Header{}, fmt.Errorf("%w: no sync word", ErrInvalidHeader)
	}

	var h Header
	h.raw = word

	switch (word >> 19) & 3 {
	case 0:
		h.Version = MPEG25
	case 2:
		h.Version = MPEG2
	case 3:
		h.Version = MPEG1
	default:
		return Header{}, fmt.Errorf("%w: reserved version", ErrInvalidHeader)
	}

	layerBits := int(word>>17) & 3
	if layerBits == 0 {
		return Header{}, fmt.Errorf("%w: reserved layer", ErrInvalidHeader)
	}
	h.Layer = 4 - layerBits
	h.Protected = (word>>16)&1 == 0

	h.BitrateIndex = int(word>>12) & 0xf
	if h.BitrateIndex == 0xf {
		return Header{}, fmt.Errorf("%w: reserved bitrate index", ErrInvalidHeader)
	}

	freq := int(word>>10) & 3
	if freq == 3 {
		return Header{}, fmt.Errorf("%w: reserved sampling frequency", ErrInvalidHeader)
	}
	h.FreqIndex = int(h.Version)*3 + freq

	h.Padding = (word>>9)&1 == 1
	h.Private = (word>>8)&1 == 1
	h.Mode = ChannelMode(word>>6) & 3
	h.ModeExtension = int(word>>4) & 3
	h.Copyright = (word>>3)&1 == 1
	h.Original = (word>>2)&1 == 1
	h.Emphasis = int(word) & 3

	h.Size = h.formulaSize()

	return h, nil
}

// parseHeaderBytes decodes the header in the first four bytes of b.
func parseHeaderBytes(b []byte) (Header, error) {
	if len(b) < headerSize {
		return Header{}, fmt.Errorf("%w: short header", ErrInvalidHeader)
	}

	return ParseHeader(binary.BigEndian.Uint32(b))
}

// Raw returns the header word the Header was parsed from.
func (h Header) Raw() uint32 { return h.raw }

// LSF reports the low sampling frequency extension (MPEG-2 and 2.5).
func (h Header) LSF() bool { return h.Version != MPEG1 }

func (h Header) lsf() int {
	if h.LSF() {
		return 1
	}

	return 0
}

// Bitrate returns the bitrate in kbps, zero for free format.
func (h Header) Bitrate() int { return bitrateTable[h.lsf()][h.Layer-1][h.BitrateIndex] }

// SampleRate returns the sampling rate in Hz.
func (h Header) SampleRate() int { return sampleRateTable[h.FreqIndex] }

// Channels returns the number of coded channels.
func (h Header) Channels() int {
	if h.Mode == Mono {
		return 1
	}

	return 2
}

// FreeFormat reports a header with bitrate index 0.
func (h Header) FreeFormat() bool { return h.BitrateIndex == 0 }

// SamplesPerFrame returns the PCM samples per channel one frame decodes to.
func (h Header) SamplesPerFrame() int {
	switch {
	case h.Layer == 1:
		return 384
	case h.Layer == 3 && h.LSF():
		return 576
	}

	return 1152
}

// SideInfoSize returns the Layer III side info length in bytes, excluding
// the CRC word. It is zero for the other layers.
func (h Header) SideInfoSize() int {
	if h.Layer != 3 {
		return 0
	}
	switch {
	case h.LSF() && h.Mode == Mono:
		return 9
	case h.LSF():
		return 17
	case h.Mode == Mono:
		return 17
	}

	return 32
}

// PayloadSize returns the number of bytes following the header word.
func (h Header) PayloadSize() int {
	if h.Size == 0 {
		return 0
	}

	return h.Size - headerSize
}

// dataOffset returns where layer data starts, counted from the header.
func (h Header) dataOffset() int {
	if h.Protected {
		return headerSize + crcSize
	}

	return headerSize
}

func (h Header) padding() int {
	if !h.Padding {
		return 0
	}
	if h.Layer == 1 {
		return 4
	}

	return 1
}

func (h Header) formulaSize() int {
	br := h.Bitrate() * 1000
	if br == 0 {
		return 0
	}
	rate := h.SampleRate()

	switch h.Layer {
	case 1:
		return 12*br/rate*4 + h.padding()
	case 2:
		return 144*br/rate + h.padding()
	}

	return 144*br/(rate<<h.lsf()) + h.padding()
}

// setFreeSize fixes the size of a free format frame from the measured
// unpadded size of the stream's frames.
func (h *Header) setFreeSize(base int) {
	if base > 0 {
		h.Size = base + h.padding()
	}
}

// unpaddedSize is the frame size with the padding slot removed.
func (h Header) unpaddedSize() int {
	if h.Size == 0 {
		return 0
	}

	return h.Size - h.padding()
}

// sameStream reports whether o can follow h in one elementary stream.
func (h Header) sameStream(o Header) bool {
	return h.raw&syncMask == o.raw&syncMask
}

// consistent reports whether o matches h in every field an encoder keeps
// fixed for a whole file: sameStream plus CRC protection, the copyright
// and original flags, emphasis and mono versus two channel coding.
func (h Header) consistent(o Header) bool {
	const mask = syncMask | 0x00010000 | 0x0f

	return h.raw&mask == o.raw&mask && (h.Mode == Mono) == (o.Mode == Mono)
}

// jsBound returns the first subband sharing samples between channels in
// Layer I and II joint stereo, or 32 when the bound does not apply.
func (h Header) jsBound() int {
	if h.Mode != JointStereo {
		return 32
	}

	return (h.ModeExtension + 1) * 4
}

func (h Header) String() string {
	return fmt.Sprintf("%s layer %d, %d Hz, %d kbps, %s", h.Version, h.Layer, h.SampleRate(), h.Bitrate(), h.Mode)
}
