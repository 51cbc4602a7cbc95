// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeMP2 stores n silent MPEG-1 Layer II frames (192 kbps, 48 kHz
// stereo) in a temporary file.
func writeMP2(t *testing.T, n int) string {
	t.Helper()

	frame := make([]byte, 576)
	binary.BigEndian.PutUint32(frame, 0xfffda400)

	name := filepath.Join(t.TempDir(), "in.mp2")
	if err := os.WriteFile(name, bytes.Repeat(frame, n), 0o600); err != nil {
		t.Fatal(err)
	}

	return name
}

func TestRun_Info(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{writeMP2(t, 10)}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	for _, want := range []string{"MPEG-1 layer 2", "48000 Hz", "192 kbps CBR", "frames: 10", "240ms"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output %q lacks %q", stdout.String(), want)
		}
	}
}

func TestRun_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		out  string
		size int
	}{
		{"wav", nil, "out.wav", 44 + 10*1152*2*2},
		{"mono wav", []string{"-mono"}, "out.wav", 44 + 10*1152*2},
		{"resampled", []string{"-rate", "16000", "-channel", "left"}, "out.wav", 44 + 3840*2},
		{"seek", []string{"-seek", "0.5"}, "out.wav", 44 + 5*1152*2*2},
		{"aiff", nil, "out.aiff", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), tt.out)
			args := append(append([]string{"-o", out}, tt.args...), writeMP2(t, 10))

			var stdout, stderr bytes.Buffer
			if err := run(context.Background(), args, &stdout, &stderr); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			if !strings.HasPrefix(stdout.String(), "wrote "+out) {
				t.Errorf("output = %q", stdout.String())
			}

			fi, err := os.Stat(out)
			if err != nil {
				t.Fatal(err)
			}
			if tt.size > 0 && fi.Size() != int64(tt.size) {
				t.Errorf("%s is %d bytes, want %d", tt.out, fi.Size(), tt.size)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	in := writeMP2(t, 4)
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"no input", nil},
		{"two inputs", []string{in, in}},
		{"bad seek", []string{"-seek", "2", in}},
		{"bad channel", []string{"-channel", "centre", in}},
		{"missing file", []string{filepath.Join(dir, "nope.mp3")}},
		{"unknown output", []string{"-o", filepath.Join(dir, "out.flac"), in}},
		{"unknown flag", []string{"-x", in}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			if err := run(context.Background(), tt.args, &stdout, &stderr); err == nil {
				t.Errorf("run(%q) error = nil", tt.args)
			}
		})
	}
}
