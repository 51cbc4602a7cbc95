// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ik5/mpegaudio/audio"
	"github.com/ik5/mpegaudio/formats/mp3"
)

func Example() {
	// 24 silent MPEG-1 Layer II frames, 192 kbps, 48 kHz stereo
	frame := make([]byte, 576)
	binary.BigEndian.PutUint32(frame, 0xfffda400)
	data := bytes.Repeat(frame, 24)

	src, err := mp3.Decoder{}.Open(bytes.NewReader(data))
	if err != nil {
		fmt.Println(err)
		return
	}

	info := src.Info()
	fmt.Printf("%s layer %d, %d kbps, %v\n", info.Version, info.Layer, info.Bitrate/1000, info.Duration)

	mono := audio.NewConverter(src, 8000, 1)
	buf := make([]float32, 8000)
	n, _ := mono.ReadSamples(buf)
	fmt.Println(n, "samples at 8 kHz mono")
	// Output:
	// MPEG-1 layer 2, 192 kbps, 576ms
	// 4608 samples at 8 kHz mono
}
