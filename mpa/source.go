// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"errors"
	"fmt"
	"io"
)

const sourceWindow = 64 << 10

// source is a cached random-access view of the audio byte range of a
// seekable reader. Slices it returns alias the cache and are valid until
// the next call.
type source struct {
	r     io.ReadSeeker
	size  int64
	start int64 // first byte after leading tags or wrappers
	end   int64 // one past the last audio byte

	cache    []byte
	cacheOff int64
}

func newSource(r io.ReadSeeker) (*source, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("mpa: stream length: %w", err)
	}

	return &source{r: r, size: size, end: size, cacheOff: -1}, nil
}

// readAt returns up to n bytes at off, clipped to the audio range. A short
// slice means the range ends before off+n.
func (s *source) readAt(off int64, n int) ([]byte, error) {
	return s.readAtLimit(off, n, s.end)
}

// readRaw is readAt bounded by the physical stream size instead of the
// audio range; tag detection uses it.
func (s *source) readRaw(off int64, n int) ([]byte, error) {
	return s.readAtLimit(off, n, s.size)
}

func (s *source) readAtLimit(off int64, n int, limit int64) ([]byte, error) {
	if off < 0 || off >= limit || n <= 0 {
		return nil, nil
	}
	if off+int64(n) > limit {
		n = int(limit - off)
	}

	if s.cacheOff >= 0 && off >= s.cacheOff && off+int64(n) <= s.cacheOff+int64(len(s.cache)) {
		i := int(off - s.cacheOff)
		return s.cache[i : i+n], nil
	}

	if err := s.fill(off, max(n, sourceWindow)); err != nil {
		return nil, err
	}
	if n > len(s.cache) {
		n = len(s.cache)
	}

	return s.cache[:n], nil
}

func (s *source) fill(off int64, n int) error {
	if off+int64(n) > s.size {
		n = int(s.size - off)
	}
	if cap(s.cache) < n {
		s.cache = make([]byte, n)
	}
	s.cache = s.cache[:n]
	s.cacheOff = -1

	if _, err := s.r.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("mpa: seek: %w", err)
	}
	got, err := io.ReadFull(s.r, s.cache)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("mpa: read: %w", err)
	}
	s.cache = s.cache[:got]
	s.cacheOff = off

	return nil
}

// length returns the size of the audio byte range.
func (s *source) length() int64 { return s.end - s.start }
