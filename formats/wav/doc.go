// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files through
// github.com/go-audio/wav.
//
// The Decoder accepts 8, 16, 24 and 32-bit PCM and returns an audio.Source
// producing float32 samples in [-1, 1]. WAVE files carrying MPEG audio
// (format tags 0x0050 and 0x0055) are rejected with ErrNotPCM; the mp3
// decoder unwraps those.
//
// Writer is an audio.Sink, so a decoded MPEG stream can be pumped straight
// into a file:
//
//	f, _ := os.Create("out.wav")
//	w := wav.NewWriter(f, 44100, 2)
//	_, err := audio.Pump(ctx, blocks, w)
//	...
//	err = w.Close()
//
// Close patches the RIFF and data chunk sizes and must always be called.
package wav
