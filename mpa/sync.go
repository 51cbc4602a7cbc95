// SPDX-License-Identifier: EPL-2.0

package mpa

import "fmt"

// synchronizer finds frame boundaries in a source. A candidate header is
// accepted only when the following frames chain onto it with consistent
// headers.
type synchronizer struct {
	src         *source
	checkFrames int
	scanLimit   int

	// freeSize is the unpadded size of free format frames, measured once
	// a free format stream is locked.
	freeSize int
}

// headerAt decodes the header at off and resolves its size.
func (s *synchronizer) headerAt(off int64) (Header, bool) {
	b, err := s.src.readAt(off, headerSize)
	if err != nil || len(b) < headerSize {
		return Header{}, false
	}
	h, err := parseHeaderBytes(b)
	if err != nil {
		return Header{}, false
	}

	if h.FreeFormat() {
		base := s.freeSize
		if base == 0 {
			base = s.measureFree(off, h)
		}
		h.setFreeSize(base)
	}
	if h.Size < h.dataOffset()+h.SideInfoSize() || h.Size > maxFrameSize {
		return Header{}, false
	}

	return h, true
}

// measureFree finds the distance to the next free format header of the
// same stream and returns it without the padding slot.
func (s *synchronizer) measureFree(off int64, h Header) int {
	b, err := s.src.readAt(off, maxFrameSize+headerSize)
	if err != nil {
		return 0
	}

	for i := h.dataOffset() + h.SideInfoSize() + 1; i+headerSize <= len(b); i++ {
		if b[i] != 0xff || b[i+1]&0xe0 != 0xe0 {
			continue
		}
		nh, err := parseHeaderBytes(b[i:])
		if err != nil || !nh.FreeFormat() || !h.sameStream(nh) {
			continue
		}

		return i - h.padding()
	}

	return 0
}

// find scans forward from off for a verified sync point. With a non-nil
// ref only headers consistent with it are considered. ID3v2 tags met on
// the way are stepped over and do not count against the scan limit.
func (s *synchronizer) find(off int64, ref *Header) (int64, Header, error) {
	limit := off + int64(s.scanLimit)
	unmeasured := false

	for pos := off; pos < limit && pos+headerSize <= s.src.end; pos++ {
		b, err := s.src.readAt(pos, id3v2HeaderSize)
		if err != nil {
			return 0, Header{}, err
		}

		if n, ok := id3v2Size(b); ok {
			pos += int64(n) - 1
			limit += int64(n)
			continue
		}
		if b[0] != 0xff || b[1]&0xe0 != 0xe0 {
			continue
		}

		h, ok := s.headerAt(pos)
		if !ok {
			if fh, err := parseHeaderBytes(b); err == nil && fh.FreeFormat() && s.freeSize == 0 {
				unmeasured = true
			}
			continue
		}
		if ref != nil && !ref.consistent(h) {
			continue
		}
		if !s.verify(pos, h) {
			continue
		}

		if h.FreeFormat() {
			s.freeSize = h.unpaddedSize()
		}

		return pos, h, nil
	}

	if unmeasured {
		return 0, Header{}, fmt.Errorf("%w: %w", ErrNoSync, ErrFreeFormat)
	}

	return 0, Header{}, ErrNoSync
}

// verify follows up to checkFrames frames from off. Running out of data
// part way counts as success once at least one link has been checked, or
// when the first frame ends exactly at the end of the data.
func (s *synchronizer) verify(off int64, h Header) bool {
	pos, cur := off, h

	for i := 0; i < s.checkFrames; i++ {
		next := pos + int64(cur.Size)
		if next+headerSize > s.src.end {
			return i > 0 || next <= s.src.end
		}

		nh, ok := s.headerAt(next)
		if !ok || !h.consistent(nh) {
			return false
		}
		pos, cur = next, nh
	}

	return true
}
