// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotSeekable is returned by Seek when the stream length is unknown.
var ErrNotSeekable = errors.New("vorbis: stream length unknown")
