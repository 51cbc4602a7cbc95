// SPDX-License-Identifier: EPL-2.0

// Package mpegaudio ties the MPEG audio decoder to the rest of the module:
// a registry holding every supported input format, file opening by
// extension with content sniffing as the fallback, and transcoding of any
// source into a WAV or AIFF writer.
//
// The decoding work itself lives in the subpackages:
//   - mpa: MPEG-1/2/2.5 Layer I, II and III frame decoding
//   - audio: the Source, Sink and Block contracts, Pump and Converter
//   - formats/mp3, formats/vorbis, formats/wav, formats/aiff: decoders
//     (and for wav and aiff, writers) built on those contracts
//
// Quick start:
//
//	f, err := mpegaudio.OpenFile("song.mp3", mpa.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	out, _ := os.Create("song.wav")
//	w, _ := mpegaudio.NewWriter("wav", out, f.SampleRate(), f.Channels())
//	res, err := mpegaudio.Transcode(ctx, f, w, 0, 0)
//	...
//	err = w.Close()
package mpegaudio
