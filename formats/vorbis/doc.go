// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis
// so the MPEG decoder's tools also accept .ogg input.
//
//	src, err := vorbis.Decoder{}.Open(file)
//	if err != nil {
//	    return err
//	}
//	info := src.Info()
//
// Seek and Info().Samples need a seekable input. Decoder implements
// audio.Prober on the Ogg capture pattern and the Vorbis identification
// header.
package vorbis
