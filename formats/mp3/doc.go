// SPDX-License-Identifier: EPL-2.0

// Package mp3 exposes the mpa decoder through the audio contracts.
//
// Decoder.Decode returns an audio.Source of float32 samples. It handles
// MPEG-1, MPEG-2 and MPEG-2.5 streams of all three layers, including
// files starting with an ID3v2 tag or wrapped in RIFF/WAVE, and delivers
// the stream's own channel count:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Open returns the concrete *Source, which adds the stream Info, decoding
// Stats and Seek. Its Blocks method gives the 16-bit block view for
// audio.Pump:
//
//	src, _ := mp3.Decoder{Options: mpa.Options{Gapless: true}}.Open(file)
//	_, err := audio.Pump(ctx, src.Blocks(), sink)
//
// Decoder also implements audio.Prober, so an audio.Registry can pick it
// by content.
package mp3
