// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
	"time"
)

func TestBlock_Timing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		b        Block
		frames   int
		duration time.Duration
	}{
		{"stereo frame", Block{PCM: make([]int16, 2304), Channels: 2, SampleRate: 44100}, 1152, 26122448 * time.Nanosecond},
		{"mono", Block{PCM: make([]int16, 480), Channels: 1, SampleRate: 48000}, 480, 10 * time.Millisecond},
		{"empty", Block{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.b.Frames(); got != tt.frames {
				t.Errorf("Frames() = %d, want %d", got, tt.frames)
			}
			if got := tt.b.Duration(); got != tt.duration {
				t.Errorf("Duration() = %v, want %v", got, tt.duration)
			}
		})
	}
}

func TestChannel(t *testing.T) {
	t.Parallel()

	c := NewChannel()
	if c.Buffer() != nil {
		t.Fatal("Buffer() before the first block is not nil")
	}

	if err := c.WriteBlock(Block{PCM: []int16{1, -1, 2, -2}, SampleRate: 22050, Channels: 2}); err != nil {
		t.Fatalf("WriteBlock() error = %v", err)
	}
	if err := c.WriteBlock(Block{PCM: []int16{3, -3}, SampleRate: 22050, Channels: 2}); err != nil {
		t.Fatalf("WriteBlock() error = %v", err)
	}

	err := c.WriteBlock(Block{PCM: []int16{4}, SampleRate: 22050, Channels: 1})
	if !errors.Is(err, ErrFormatChanged) {
		t.Errorf("WriteBlock() with a new channel count error = %v, want ErrFormatChanged", err)
	}

	c.Notify(Event{Kind: EventBitrate, Bitrate: 64000})

	buf := c.Buffer()
	want := []int{1, -1, 2, -2, 3, -3}
	if len(buf.Data) != len(want) {
		t.Fatalf("Data = %v, want %v", buf.Data, want)
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("Data[%d] = %d, want %d", i, buf.Data[i], want[i])
		}
	}
	if c.Blocks() != 2 || len(c.Events()) != 1 {
		t.Errorf("Blocks() = %d, Events() = %v", c.Blocks(), c.Events())
	}
}

func TestEventKind_String(t *testing.T) {
	t.Parallel()

	tests := map[EventKind]string{
		EventBitrate:  "bitrate",
		EventPosition: "position",
		EventResync:   "resync",
		EventKind(9):  "EventKind(9)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
