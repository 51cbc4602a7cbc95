// SPDX-License-Identifier: EPL-2.0

package mpa

import (
	"errors"
	"testing"
)

func TestParseHeader_Sizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		word     uint32
		size     int
		rate     int
		bitrate  int
		channels int
		samples  int
		side     int
	}{
		{"MPEG-1 L3 128k 44.1", hdrL3Stereo128, 417, 44100, 128, 2, 1152, 32},
		{"MPEG-1 L3 128k 44.1 padded", hdrL3Stereo128 | padBit, 418, 44100, 128, 2, 1152, 32},
		{"MPEG-1 L3 mono", hdrL3Mono128, 417, 44100, 128, 1, 1152, 17},
		{"MPEG-1 L3 320k 48", hdrL3Stereo320, 960, 48000, 320, 2, 1152, 32},
		{"MPEG-1 L2 192k 48", hdrL2Stereo192, 576, 48000, 192, 2, 1152, 0},
		{"MPEG-1 L1 384k 44.1", hdrL1Stereo384, 416, 44100, 384, 2, 384, 0},
		{"MPEG-1 L1 384k 44.1 padded", hdrL1Stereo384 | padBit, 420, 44100, 384, 2, 384, 0},
		{"MPEG-2 L3 64k 22.05", hdrMPEG2L3, 208, 22050, 64, 2, 576, 17},
		{"MPEG-2.5 L3 8k 8", hdrMPEG25L3, 72, 8000, 8, 2, 576, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, err := ParseHeader(tt.word)
			if err != nil {
				t.Fatalf("ParseHeader() error = %v", err)
			}
			if h.Size != tt.size {
				t.Errorf("Size = %d, want %d", h.Size, tt.size)
			}
			if h.PayloadSize() != tt.size-4 {
				t.Errorf("PayloadSize() = %d, want %d", h.PayloadSize(), tt.size-4)
			}
			if h.SampleRate() != tt.rate {
				t.Errorf("SampleRate() = %d, want %d", h.SampleRate(), tt.rate)
			}
			if h.Bitrate() != tt.bitrate {
				t.Errorf("Bitrate() = %d, want %d", h.Bitrate(), tt.bitrate)
			}
			if h.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", h.Channels(), tt.channels)
			}
			if h.SamplesPerFrame() != tt.samples {
				t.Errorf("SamplesPerFrame() = %d, want %d", h.SamplesPerFrame(), tt.samples)
			}
			if h.SideInfoSize() != tt.side {
				t.Errorf("SideInfoSize() = %d, want %d", h.SideInfoSize(), tt.side)
			}
			if h.Raw() != tt.word {
				t.Errorf("Raw() = %#x, want %#x", h.Raw(), tt.word)
			}
		})
	}
}

func TestParseHeader_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		word uint32
	}{
		{"no sync", 0x7ffb9000},
		{"reserved version", 0xffeb9000},
		{"reserved layer", 0xfff99000},
		{"bad bitrate", 0xfffbf000},
		{"reserved rate", 0xfffb9c00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseHeader(tt.word); !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("ParseHeader(%#x) error = %v, want ErrInvalidHeader", tt.word, err)
			}
		})
	}
}

func TestHeader_Fields(t *testing.T) {
	t.Parallel()

	h := mustHeader(hdrL3Joint128 | 0x30 | 0x0c)
	if h.Mode != JointStereo {
		t.Errorf("Mode = %v, want joint stereo", h.Mode)
	}
	if h.ModeExtension != 3 {
		t.Errorf("ModeExtension = %d, want 3", h.ModeExtension)
	}
	if !h.Copyright || !h.Original {
		t.Errorf("Copyright/Original = %v/%v, want true/true", h.Copyright, h.Original)
	}
	if h.Protected {
		t.Error("Protected = true for a header with the protection bit set")
	}
	if h.Version != MPEG1 || h.LSF() {
		t.Errorf("Version = %v, LSF = %v", h.Version, h.LSF())
	}

	p := mustHeader(hdrL3Stereo128 &^ 0x10000)
	if !p.Protected || p.dataOffset() != 6 {
		t.Errorf("protected header: Protected = %v, dataOffset = %d", p.Protected, p.dataOffset())
	}

	want := "MPEG-1 layer 3, 44100 Hz, 128 kbps, joint stereo"
	if got := h.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestHeader_FreeFormat(t *testing.T) {
	t.Parallel()

	h := mustHeader(hdrFreeL3)
	if !h.FreeFormat() {
		t.Fatal("FreeFormat() = false")
	}
	if h.Size != 0 || h.PayloadSize() != 0 {
		t.Errorf("unmeasured free format Size = %d", h.Size)
	}

	h.setFreeSize(500)
	if h.Size != 500 {
		t.Errorf("Size = %d, want 500", h.Size)
	}

	hp := mustHeader(hdrFreeL3 | padBit)
	hp.setFreeSize(500)
	if hp.Size != 501 || hp.unpaddedSize() != 500 {
		t.Errorf("padded Size = %d, unpadded = %d", hp.Size, hp.unpaddedSize())
	}
}

func TestHeader_SameStream(t *testing.T) {
	t.Parallel()

	a := mustHeader(hdrL3Stereo128)
	tests := []struct {
		word uint32
		want bool
	}{
		{hdrL3Stereo128 | padBit, true},
		{hdrL3Joint128, true},
		{hdrL3Stereo320 &^ 0x400, true},  // bitrate change, same rate
		{hdrL3Stereo320, false},          // 48 kHz
		{hdrL2Stereo192 &^ 0x400, false}, // layer II
		{hdrMPEG2L3, false},
	}
	for _, tt := range tests {
		if got := a.sameStream(mustHeader(tt.word)); got != tt.want {
			t.Errorf("sameStream(%#x) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestHeader_Consistent(t *testing.T) {
	t.Parallel()

	a := mustHeader(hdrL3Stereo128)
	tests := []struct {
		word uint32
		want bool
	}{
		{hdrL3Stereo128 | padBit | 0x100, true},
		{hdrL3Joint128 | 0x30, true},
		{hdrL3Stereo320 &^ 0x400, true},
		{hdrL3Stereo128 &^ 0x00010000, false}, // CRC protected
		{hdrL3Stereo128 | 0x08, false},        // copyright
		{hdrL3Stereo128 | 0x01, false},        // 50/15 µs emphasis
		{hdrL3Mono128, false},
		{hdrL3Stereo320, false},
	}
	for _, tt := range tests {
		if got := a.consistent(mustHeader(tt.word)); got != tt.want {
			t.Errorf("consistent(%#x) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestHeader_JointStereoBound(t *testing.T) {
	t.Parallel()

	for ext := range 4 {
		h := mustHeader(hdrL1Stereo384 | 0x40 | uint32(ext)<<4)
		if got, want := h.jsBound(), (ext+1)*4; got != want {
			t.Errorf("jsBound(ext %d) = %d, want %d", ext, got, want)
		}
	}
	if got := mustHeader(hdrL1Stereo384).jsBound(); got != 32 {
		t.Errorf("stereo jsBound() = %d, want 32", got)
	}
}
