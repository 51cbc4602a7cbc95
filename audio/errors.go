// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	// ErrFormatChanged is returned by a Channel when a block arrives with a
	// sample rate or channel count different from the first one.
	ErrFormatChanged = errors.New("audio: block format changed mid-stream")
	ErrUnknownFormat = errors.New("audio: unknown format")
)
