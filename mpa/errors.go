// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"errors"

	"github.com/ik5/mpegaudio/internal/bitstream"
)

var (
	ErrNoSync           = errors.New("mpa: no MPEG audio frame sequence found")
	ErrInvalidHeader    = errors.New("mpa: invalid frame header")
	ErrFreeFormat       = errors.New("mpa: free format frame size not found")
	ErrReservoir        = errors.New("mpa: main data begins before reservoir start")
	ErrCorruptGranule   = errors.New("mpa: inconsistent granule bit accounting")
	ErrInvalidSideInfo  = errors.New("mpa: invalid side info")
	ErrUnsupportedLayer = errors.New("mpa: unsupported layer")
	ErrNotSeekable      = errors.New("mpa: stream length unknown, cannot seek")
	ErrTruncated        = errors.New("mpa: truncated frame")

	// ErrBitOverrun is returned when a decoder reads past the end of its
	// frame window.
	ErrBitOverrun = bitstream.ErrOverrun
)
