// SPDX-License-Identifier: EPL-2.0

// Package config holds the run configuration, loaded from YAML and
// overridden by command-line flags.
//
//	input:
//	  list: files.txt
//	output:
//	  save_path: ./output
//	  mp3_bitrate: 320k
//	model:
//	  name: speech
//	  device: cuda
//	  seed: 42
//	  guidance_scale: 3.5
//	  ddim_steps: 50
//	chunking:
//	  max_ms: 45000
//	  crossfade_ms: 10
//	logging:
//	  level: debug
package config
