// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/formats/vorbis"
)

// ExampleDecoder_Decode decodes an Ogg Vorbis file into memory and
// conforms it to 48 kHz stereo.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := vorbis.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		log.Fatal(err)
	}

	out, err := audio.Conform(buf, 48000, 2)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
}
