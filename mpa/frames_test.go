// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"bytes"
	"encoding/binary"
	"math/rand"
)

// Header words used across the tests.
const (
	hdrL3Stereo128 = 0xfffb9000 // MPEG-1 Layer III, 128 kbps, 44.1 kHz, stereo
	hdrL3Mono128   = 0xfffb90c0
	hdrL3Joint128  = 0xfffb9040
	hdrL3Stereo320 = 0xfffbe400 // 48 kHz
	hdrL2Stereo192 = 0xfffda400 // 48 kHz
	hdrL1Stereo384 = 0xffffc000 // 44.1 kHz
	hdrL1Mono384   = 0xffffc0c0
	hdrMPEG2L3     = 0xfff38000 // 64 kbps, 22.05 kHz
	hdrMPEG25L3    = 0xffe31800 // 8 kbps, 8 kHz
	hdrFreeL3      = 0xfffb00c0 // free format, mono

	padBit = 0x200
)

// bitWriter packs MSB-first bit fields.
type bitWriter struct {
	buf []byte
	n   int
}

func (w *bitWriter) put(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		if w.n%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.buf[len(w.buf)-1] |= 0x80 >> uint(w.n%8)
		}
		w.n++
	}
}

// bytes returns the written bits padded to size bytes.
func (w *bitWriter) bytes(size int) []byte {
	b := make([]byte, max(size, len(w.buf)))
	copy(b, w.buf)

	return b
}

func mustHeader(word uint32) Header {
	h, err := ParseHeader(word)
	if err != nil {
		panic(err)
	}

	return h
}

// silentFrame builds a frame whose payload is all zero bits. For every
// layer that decodes to digital silence.
func silentFrame(word uint32) []byte {
	h := mustHeader(word)
	b := make([]byte, h.Size)
	binary.BigEndian.PutUint32(b, word)

	return b
}

func silentStream(word uint32, n int) []byte {
	var buf bytes.Buffer
	f := silentFrame(word)
	for range n {
		buf.Write(f)
	}

	return buf.Bytes()
}

// freeFrame builds a silent free format frame of the given size.
func freeFrame(word uint32, size int) []byte {
	b := make([]byte, size)
	binary.BigEndian.PutUint32(b, word)

	return b
}

// noise returns n random bytes over the full byte range, sync-like
// patterns included.
func noise(seed int64, n int) []byte {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	_, _ = rng.Read(b)

	return b
}

// layer1DCFrame builds a Layer I mono frame with subband 0 holding code
// for all 12 samples at a 4 bit allocation and scale factor index sf.
func layer1DCFrame(code, sf int) []byte {
	h := mustHeader(hdrL1Mono384)
	w := &bitWriter{}
	w.put(hdrL1Mono384, 32)
	for sb := range 32 {
		if sb == 0 {
			w.put(3, 4)
			continue
		}
		w.put(0, 4)
	}
	w.put(uint32(sf), 6)
	for range 12 {
		w.put(uint32(code), 4)
	}

	return w.bytes(h.Size)
}

func id3v2Tag(payload int) []byte {
	b := make([]byte, id3v2HeaderSize+payload)
	copy(b, "ID3")
	b[3] = 4
	size := payload
	for i := 9; i >= 6; i-- {
		b[i] = byte(size & 0x7f)
		size >>= 7
	}

	return b
}

func id3v1Tag(title, artist string, track int) []byte {
	b := make([]byte, id3v1Size)
	copy(b, "TAG")
	copy(b[3:33], title)
	copy(b[33:63], artist)
	copy(b[63:93], "Album")
	copy(b[93:97], "1999")
	copy(b[97:125], "comment")
	b[126] = byte(track)
	b[127] = 17

	return b
}

// xingFrame builds an Info/Xing frame for a silent MPEG-1 Layer III
// stream with a LAME extension.
func xingFrame(word uint32, kind string, frames, bytesTotal int, toc bool, delay, padding int) []byte {
	b := silentFrame(word)
	h := mustHeader(word)
	p := h.dataOffset() + h.SideInfoSize()

	copy(b[p:], kind)
	flags := uint32(xingFrames | xingBytes)
	if toc {
		flags |= xingTOC
	}
	binary.BigEndian.PutUint32(b[p+4:], flags)
	binary.BigEndian.PutUint32(b[p+8:], uint32(frames))
	binary.BigEndian.PutUint32(b[p+12:], uint32(bytesTotal))
	p += 16
	if toc {
		for i := range 100 {
			b[p+i] = byte(i * 256 / 100)
		}
		p += 100
	}

	copy(b[p:], "LAME3.100")
	d := b[p+21:]
	d[0] = byte(delay >> 4)
	d[1] = byte(delay<<4) | byte(padding>>8)
	d[2] = byte(padding)

	return b
}
