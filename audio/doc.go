// SPDX-License-Identifier: EPL-2.0

// Package audio is the host side of the decoders: the contracts they
// implement and the plumbing between them and an output.
//
// A Source streams interleaved float32 samples in [-1,1]. A BlockSource
// is pulled one decoded block of 16-bit PCM at a time, which is how the
// MPEG audio decoder hands out frames. BlockReader and SourceBlocks
// convert between the two.
//
// Pump drives a BlockSource into a Sink until the end of the stream:
//
//	sink := audio.NewChannel()
//	frames, err := audio.Pump(ctx, stream, sink)
//
// Channel is an in-memory Sink that collects the PCM into a go-audio
// IntBuffer and keeps the advisory events (bitrate changes, position
// jumps, resyncs). It refuses blocks whose format differs from the first.
//
// Converter changes sample rate and channel count of any Source:
//
//	mono8k := audio.NewConverter(src, 8000, 1)
//
// Registry maps format keys to decoders. Sniff picks one by content for
// decoders that also implement Prober.
//
// Reads return io.EOF at the end of a stream:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
