// SPDX-License-Identifier: EPL-2.0

// Command audsr upsamples audio files to 48 kHz with the AudioSR diffusion
// model, processing long recordings in 45 second chunks.
//
// Usage:
//
//	audsr -i interview.mp3 -s ./output
//	audsr --il files.txt --model_name speech -d cuda
//	audsr --config audsr.yaml
//
// Every input produces {name}_processed.wav and {name}_processed.mp3 in a
// timestamped subdirectory of the save path.
package main

import (
	"fmt"
	"os"

	"github.com/ik5/audsr/cmd/audsr/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
