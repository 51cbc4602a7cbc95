// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
)

// Block is one chunk of interleaved 16-bit PCM as produced by a block
// decoder.
type Block struct {
	PCM        []int16
	SampleRate int
	Channels   int

	// Bitrate of the frame the block came from in bits per second, 0 when
	// unknown.
	Bitrate int
	// Position is the playback time of the first sample.
	Position time.Duration
	// Recovered marks the first block after the decoder lost and regained
	// sync.
	Recovered bool
}

// Frames returns the number of sample frames in b.
func (b Block) Frames() int {
	if b.Channels == 0 {
		return 0
	}

	return len(b.PCM) / b.Channels
}

// Duration returns the playback time covered by b.
func (b Block) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}

	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// BlockSource is pulled block by block. DecodeNextBlock returns io.EOF at
// the end of the stream.
type BlockSource interface {
	DecodeNextBlock() (Block, error)
}

// EventKind tells what an Event reports.
type EventKind int

const (
	// EventBitrate is sent when the bitrate differs from the previous
	// block.
	EventBitrate EventKind = iota
	// EventPosition is sent when playback position jumps, after a seek.
	EventPosition
	// EventResync is sent when the decoder recovered from lost sync.
	EventResync
)

func (k EventKind) String() string {
	switch k {
	case EventBitrate:
		return "bitrate"
	case EventPosition:
		return "position"
	case EventResync:
		return "resync"
	}

	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is advisory metadata pushed to a Sink next to the PCM.
type Event struct {
	Kind     EventKind
	Bitrate  int
	Position time.Duration
}

// Sink receives decoded blocks.
type Sink interface {
	WriteBlock(b Block) error
	Notify(e Event)
}

// Channel is an in-memory Sink collecting PCM into a go-audio IntBuffer.
// The first block fixes the format.
type Channel struct {
	mu     sync.Mutex
	buf    *goaudio.IntBuffer
	events []Event
	blocks int
}

func NewChannel() *Channel { return &Channel{} }

func (c *Channel) WriteBlock(b Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buf == nil {
		c.buf = &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: b.Channels, SampleRate: b.SampleRate},
			SourceBitDepth: 16,
		}
	} else if f := c.buf.Format; f.NumChannels != b.Channels || f.SampleRate != b.SampleRate {
		return fmt.Errorf("%w: %d Hz x%d after %d Hz x%d",
			ErrFormatChanged, b.SampleRate, b.Channels, f.SampleRate, f.NumChannels)
	}

	c.buf.Data = append(c.buf.Data, make([]int, len(b.PCM))...)
	data := c.buf.Data[len(c.buf.Data)-len(b.PCM):]
	for i, v := range b.PCM {
		data[i] = int(v)
	}
	c.blocks++

	return nil
}

func (c *Channel) Notify(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = append(c.events, e)
}

// Buffer returns the collected PCM, nil before the first block.
func (c *Channel) Buffer() *goaudio.IntBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.buf
}

// Events returns a copy of the events received so far.
func (c *Channel) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Event(nil), c.events...)
}

// Blocks returns the number of blocks written.
func (c *Channel) Blocks() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blocks
}
