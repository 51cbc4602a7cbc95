// SPDX-License-Identifier: EPL-2.0

package mpa

import "log/slog"

const (
	// DefaultCheckFrames is the number of consecutive consistent headers
	// needed to lock onto a stream.
	DefaultCheckFrames = 10
	// DefaultScanLimit bounds how many bytes are scanned for sync.
	DefaultScanLimit = 64 << 10
)

// Channel selection for Options.Channel.
const (
	BothChannels = iota
	LeftOnly
	RightOnly
)

// Options configures a Stream. The zero value decodes every channel with
// default sync settings and no logging.
type Options struct {
	// CheckFrames is the number of consecutive frames that must agree on
	// version, layer and sampling rate before a sync point is accepted.
	// Reaching the end of data part way through the run also counts as
	// agreement.
	CheckFrames int
	// ScanLimit is the maximum number of bytes scanned when looking for
	// sync, both at open and after corruption.
	ScanLimit int
	// Mono mixes stereo streams down to a single channel.
	Mono bool
	// Channel picks LeftOnly or RightOnly output from a stereo stream.
	Channel int
	// Gapless trims encoder delay and padding when the stream carries a
	// LAME tag.
	Gapless bool
	// Logger receives debug records about resyncs and damaged frames.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.CheckFrames <= 0 {
		o.CheckFrames = DefaultCheckFrames
	}
	if o.ScanLimit <= 0 {
		o.ScanLimit = DefaultScanLimit
	}
	if o.Channel < BothChannels || o.Channel > RightOnly {
		o.Channel = BothChannels
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	return o
}
