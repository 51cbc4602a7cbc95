// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes uncompressed AIFF files with
// github.com/go-audio/aiff.
//
// Decoder produces an audio.Source of float32 samples in [-1, 1] for 8, 16,
// 24 and 32-bit files. Writer is the 16-bit audio.Sink counterpart used by
// mpadec for -o out.aiff.
package aiff
