// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"fmt"
	"io"
	"log/slog"
)

// reservoirSize keeps more than the largest main_data_begin (511 bytes)
// of previous main data.
const reservoirSize = 2 * maxFrameSize

// reservoir retains the tail of previous frames' main data so a Layer III
// granule can start before the current frame.
type reservoir struct {
	tail   []byte
	window []byte
}

// mainData returns begin bytes of retained data followed by main. It
// fails with ErrReservoir when fewer than begin bytes are retained.
func (r *reservoir) mainData(begin int, main []byte) ([]byte, error) {
	if begin > len(r.tail) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrReservoir, begin, len(r.tail))
	}
	r.window = append(r.window[:0], r.tail[len(r.tail)-begin:]...)
	r.window = append(r.window, main...)

	return r.window, nil
}

// store appends this frame's main data to the retained tail.
func (r *reservoir) store(main []byte) {
	r.tail = append(r.tail, main...)
	if over := len(r.tail) - reservoirSize; over > 0 {
		r.tail = append(r.tail[:0], r.tail[over:]...)
	}
}

func (r *reservoir) reset() { r.tail = r.tail[:0] }

// frame is one complete frame as read from the stream.
type frame struct {
	Header
	offset int64
	data   []byte // whole frame, zero padded to Size when truncated

	recovered bool // a resync preceded this frame
	truncated bool
}

// payload returns the bytes after the header and CRC word.
func (f *frame) payload() []byte { return f.data[f.dataOffset():] }

// frameReader pulls frames one by one, resyncing when a header does not
// belong to the locked stream.
type frameReader struct {
	src  *source
	sync *synchronizer
	log  *slog.Logger

	ref Header
	pos int64
	buf []byte

	resyncs int
}

// next reads the frame at the current position. It returns io.EOF at the
// end of the audio range or when sync cannot be found again, and
// ErrTruncated for a final frame too short to hold its side info. A longer
// final fragment is returned zero padded and marked truncated.
func (fr *frameReader) next() (frame, error) {
	if fr.pos+headerSize > fr.src.end {
		return frame{}, io.EOF
	}

	h, ok := fr.sync.headerAt(fr.pos)
	recovered := false
	if !ok || !fr.accept(h) {
		off, nh, err := fr.sync.find(fr.pos+1, &fr.ref)
		if err != nil {
			fr.log.Debug("mpa: sync lost", "offset", fr.pos, "err", err)
			return frame{}, io.EOF
		}
		fr.log.Debug("mpa: resynced", "from", fr.pos, "to", off)
		fr.resyncs++
		fr.pos, h, recovered = off, nh, true
	}

	b, err := fr.src.readAt(fr.pos, h.Size)
	if err != nil {
		return frame{}, err
	}

	f := frame{Header: h, offset: fr.pos, recovered: recovered}
	if len(b) < h.Size {
		if len(b) < h.dataOffset()+h.SideInfoSize() {
			off := fr.pos
			fr.pos = fr.src.end
			return frame{}, fmt.Errorf("%w: %d of %d bytes at offset %d", ErrTruncated, len(b), h.Size, off)
		}
		fr.log.Warn("mpa: truncated frame", "offset", fr.pos, "have", len(b), "want", h.Size)
		f.truncated = true
	}

	if cap(fr.buf) < h.Size {
		fr.buf = make([]byte, maxFrameSize)
	}
	fr.buf = fr.buf[:h.Size]
	n := copy(fr.buf, b)
	clear(fr.buf[n:])
	f.data = fr.buf

	fr.pos += int64(h.Size)

	return f, nil
}

// accept reports whether h, found where the previous frame ended, starts
// a frame of the locked stream. A header that differs from the locked one
// in more than padding, bitrate or mode must be followed by another frame
// header, or end exactly at the end of the data, before it is trusted.
func (fr *frameReader) accept(h Header) bool {
	if !fr.ref.sameStream(h) {
		return false
	}
	if fr.ref.consistent(h) {
		return true
	}

	next := fr.pos + int64(h.Size)
	if next+headerSize > fr.src.end {
		return next <= fr.src.end
	}
	nh, ok := fr.sync.headerAt(next)

	return ok && h.consistent(nh)
}

// seek positions the reader at a byte offset and relocks there.
func (fr *frameReader) seek(off int64) error {
	pos, h, err := fr.sync.find(off, &fr.ref)
	if err != nil {
		return err
	}
	fr.pos = pos
	fr.ref = h

	return nil
}
