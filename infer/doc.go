// SPDX-License-Identifier: EPL-2.0

// Package infer connects chunks to the external super-resolution model.
//
// Model is the narrow contract the rest of the module depends on: given an
// input audio file it writes a 48 kHz WAV. PythonModel is the production
// implementation. It runs an embedded worker script that loads the AudioSR
// checkpoint once and then serves one request per line:
//
//	-> {"input":"...","output":"...","seed":42,"guidance_scale":3.5,"ddim_steps":50,"latent_t_per_second":12.8}
//	<- {"ok":true}
//
// Adapter turns in-memory chunks into model calls through temporary WAV
// files named temp_{name}_{i}.wav and removes them afterwards.
package infer
