// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/formats/wav"
	"github.com/ik5/audsr/internal/audiotest"
)

// Example_roundTrip writes a chunk to disk the way the inference adapter
// does and reads it back.
func Example_roundTrip() {
	dir, err := os.MkdirTemp("", "wav-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	chunk, _ := audio.NewBuffer(16000, 1, audiotest.Sine(16000, 1, 8000, 220))
	path := filepath.Join(dir, "temp_song_0.wav")

	if err := wav.WriteFile(path, chunk); err != nil {
		fmt.Println(err)
		return
	}

	back, err := wav.ReadFile(path)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(back)
	// Output: 16000 Hz, 1 ch, 500 ms
}

// Example_decoding streams samples through the Decoder.
func Example_decoding() {
	dir, _ := os.MkdirTemp("", "wav-example")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "tone.wav")
	buf, _ := audio.NewBuffer(8000, 2, audiotest.Sine(8000, 2, 10000, 440))
	_ = wav.WriteFile(path, buf)

	f, _ := os.Open(path)
	defer f.Close()

	source, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println(err)
		return
	}

	collected, _ := audio.ReadAll(source)
	fmt.Printf("%d Hz, %d channels, %d frames\n", source.SampleRate(), source.Channels(), collected.Frames())
	// Output: 8000 Hz, 2 channels, 10000 frames
}
