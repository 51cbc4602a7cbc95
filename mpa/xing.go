// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"bytes"
	"encoding/binary"
)

// Xing header flags.
const (
	xingFrames = 1 << iota
	xingBytes
	xingTOC
	xingScale
)

// DecoderDelay is the synthesis delay, in samples, of an ISO decoder.
// Encoders account for it in the LAME tag padding.
const DecoderDelay = 529

// VBRHeader is the content of a Xing/Info or VBRI tag carried by the first
// frame of a stream.
type VBRHeader struct {
	// Kind is "Xing", "Info" or "VBRI".
	Kind    string
	Frames  int // audio frames, the tag frame excluded
	Bytes   int // audio bytes, the tag frame included
	TOC     []byte
	Quality int

	// Encoder is the LAME version string when a LAME extension follows.
	Encoder        string
	EncoderDelay   int
	EncoderPadding int
}

// HasLAME reports whether encoder delay and padding are known.
func (v *VBRHeader) HasLAME() bool { return v.Encoder != "" }

// parseVBRHeader looks for a Xing/Info tag after the side info of frame,
// then for a VBRI tag at its fixed offset.
func parseVBRHeader(h Header, frame []byte) (*VBRHeader, bool) {
	if h.Layer != 3 {
		return nil, false
	}
	if v, ok := parseXing(frame, h.dataOffset()+h.SideInfoSize()); ok {
		return v, true
	}

	return parseVBRI(frame)
}

func parseXing(frame []byte, pos int) (*VBRHeader, bool) {
	if len(frame) < pos+8 {
		return nil, false
	}
	kind := string(frame[pos : pos+4])
	if kind != "Xing" && kind != "Info" {
		return nil, false
	}
	v := &VBRHeader{Kind: kind}
	flags := binary.BigEndian.Uint32(frame[pos+4:])
	pos += 8

	next := func(n int) []byte {
		if len(frame) < pos+n {
			return nil
		}
		b := frame[pos : pos+n]
		pos += n

		return b
	}

	if flags&xingFrames != 0 {
		b := next(4)
		if b == nil {
			return nil, false
		}
		v.Frames = int(binary.BigEndian.Uint32(b))
	}
	if flags&xingBytes != 0 {
		b := next(4)
		if b == nil {
			return nil, false
		}
		v.Bytes = int(binary.BigEndian.Uint32(b))
	}
	if flags&xingTOC != 0 {
		b := next(100)
		if b == nil {
			return nil, false
		}
		v.TOC = append([]byte(nil), b...)
	}
	if flags&xingScale != 0 {
		b := next(4)
		if b == nil {
			return nil, false
		}
		v.Quality = int(binary.BigEndian.Uint32(b))
	}

	// LAME extension: 9 byte version, 12 bytes of encoder settings, then
	// 12 bit delay and 12 bit padding.
	if b := next(9 + 12 + 3); b != nil && isLAMEVersion(b[:9]) {
		v.Encoder = string(bytes.TrimRight(b[:9], "\x00 "))
		d := b[21:]
		v.EncoderDelay = int(d[0])<<4 | int(d[1])>>4
		v.EncoderPadding = int(d[1]&0x0f)<<8 | int(d[2])
	}

	return v, true
}

func isLAMEVersion(b []byte) bool {
	for _, p := range []string{"LAME", "L3.9", "Gogo", "GOGO", "Lavf", "Lavc"} {
		if bytes.HasPrefix(b, []byte(p)) {
			return true
		}
	}

	return false
}

// VBRI sits 32 bytes after the header regardless of mode.
func parseVBRI(frame []byte) (*VBRHeader, bool) {
	const pos = headerSize + 32
	if len(frame) < pos+26 || string(frame[pos:pos+4]) != "VBRI" {
		return nil, false
	}
	b := frame[pos:]

	return &VBRHeader{
		Kind:         "VBRI",
		EncoderDelay: int(binary.BigEndian.Uint16(b[6:])),
		Quality:      int(binary.BigEndian.Uint16(b[8:])),
		Bytes:        int(binary.BigEndian.Uint32(b[10:])),
		Frames:       int(binary.BigEndian.Uint32(b[14:])),
	}, true
}

// seekOffset maps a position fraction to a byte fraction of the stream
// through the TOC, interpolating between entries.
func (v *VBRHeader) seekOffset(fraction float64) (float64, bool) {
	if len(v.TOC) != 100 {
		return 0, false
	}
	p := fraction * 100
	i := int(p)
	if i > 99 {
		i = 99
	}
	a := float64(v.TOC[i])
	b := 256.0
	if i < 99 {
		b = float64(v.TOC[i+1])
	}

	return (a + (b-a)*(p-float64(i))) / 256, true
}
