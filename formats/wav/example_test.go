// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/mpegaudio/formats/wav"
	"github.com/ik5/mpegaudio/internal/audiotest"
)

func ExampleWriteWAV16() {
	ws := &audiotest.WriteSeeker{}
	if err := wav.WriteWAV16(ws, 8000, 2, []int16{0, 0, 16384, -16384}); err != nil {
		fmt.Println(err)
		return
	}

	src, err := wav.Decoder{}.Decode(bytes.NewReader(ws.Bytes()))
	if err != nil {
		fmt.Println(err)
		return
	}

	buf := make([]float32, 8)
	n, _ := src.ReadSamples(buf)
	fmt.Println(len(ws.Bytes()), src.SampleRate(), src.Channels(), buf[:n])
	// Output: 52 8000 2 [0 0 0.5 -0.5]
}
