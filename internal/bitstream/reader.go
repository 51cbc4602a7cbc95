// SPDX-License-Identifier: EPL-2.0

// Package bitstream reads big-endian bit fields out of a byte slice.
//
// Every MPEG audio layer is parsed through a Reader: side info, scale
// factors, Huffman codes and raw samples are all most-significant-bit
// first. A Reader never indexes past the end of its buffer; a read that
// would do so yields zero bits and leaves ErrOverrun in Err.
package bitstream

import "errors"

// ErrOverrun is reported when a read or skip moves past the end of the
// buffer.
var ErrOverrun = errors.New("bitstream: read past end of buffer")

// Reader is a bit cursor over a byte slice.
type Reader struct {
	buf []byte
	pos int // in bits
	err error
}

// NewReader returns a Reader positioned at the first bit of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Reset points the reader at b and clears any sticky error.
func (r *Reader) Reset(b []byte) {
	r.buf = b
	r.pos = 0
	r.err = nil
}

// Err returns ErrOverrun once any access went past the end.
func (r *Reader) Err() error { return r.err }

// Pos returns the cursor in bits from the start of the buffer.
func (r *Reader) Pos() int { return r.pos }

// Len returns the buffer length in bits.
func (r *Reader) Len() int { return len(r.buf) * 8 }

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int { return len(r.buf)*8 - r.pos }

// SetPos moves the cursor to an absolute bit position.
func (r *Reader) SetPos(pos int) {
	if pos < 0 || pos > len(r.buf)*8 {
		r.err = ErrOverrun
		if pos < 0 {
			pos = 0
		} else {
			pos = len(r.buf) * 8
		}
	}
	r.pos = pos
}

// Peek returns the next n bits (0..32) without advancing. Bits beyond the
// end of the buffer read as zero and set the overrun error.
func (r *Reader) Peek(n int) uint32 {
	if n <= 0 {
		return 0
	}
	end := r.pos + n
	if end > len(r.buf)*8 {
		r.err = ErrOverrun
		return r.peekPadded(n)
	}

	// At most 5 bytes cover 32 bits at a non-zero bit offset.
	first := r.pos >> 3
	last := (end - 1) >> 3
	var acc uint64
	for i := first; i <= last; i++ {
		acc = acc<<8 | uint64(r.buf[i])
	}
	tail := (last+1)*8 - end
	acc >>= uint(tail)

	return uint32(acc & (1<<uint(n) - 1))
}

func (r *Reader) peekPadded(n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		p := r.pos + i
		v <<= 1
		if p < len(r.buf)*8 {
			v |= uint32(r.buf[p>>3]>>(7-uint(p&7))) & 1
		}
	}

	return v
}

// Bits reads and consumes the next n bits (0..32).
func (r *Reader) Bits(n int) uint32 {
	v := r.Peek(n)
	r.Skip(n)

	return v
}

// Bit reads a single bit.
func (r *Reader) Bit() uint32 {
	if r.pos >= len(r.buf)*8 {
		r.err = ErrOverrun
		return 0
	}
	v := uint32(r.buf[r.pos>>3]>>(7-uint(r.pos&7))) & 1
	r.pos++

	return v
}

// Flag reads a single bit as a bool.
func (r *Reader) Flag() bool { return r.Bit() == 1 }

// Skip advances the cursor by n bits.
func (r *Reader) Skip(n int) { r.SetPos(r.pos + n) }

// Back moves the cursor back by n bits.
func (r *Reader) Back(n int) { r.SetPos(r.pos - n) }

// Align advances to the next byte boundary.
func (r *Reader) Align() {
	if rem := r.pos & 7; rem != 0 {
		r.Skip(8 - rem)
	}
}
