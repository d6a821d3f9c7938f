// SPDX-License-Identifier: EPL-2.0

// Package stegwave hides encrypted payloads inside audio files using
// quantization-index modulation of wavelet detail coefficients.
//
// A payload — plain text, an image, or an arbitrary document — is encrypted
// twice (an inner ECC-keyed AES layer, then an outer RSA-keyed AES layer),
// framed with a length-prefixed JSON header, and modulated bit by bit into
// the coarsest detail band of a Daubechies wavelet decomposition of the
// carrier. The output is always 16-bit PCM WAV so the embedded bits survive
// the write exactly; extraction re-analyzes the stego file and reverses
// every step.
//
// # Embedding
//
//	p, _ := stegwave.New(stegwave.DefaultConfig())
//	info, err := p.Embed("carrier.wav", "stego.wav", stegwave.Text("meet at noon"))
//
// Embed writes three files: the stego waveform, stego.wav.key (a labeled
// dump of both key pairs), and stego.wav.info (a JSON sidecar with the
// embedded bit count, key material and embedding strength). The frame has
// no terminator, so the sidecar's bit count is what makes extraction
// possible.
//
// # Extracting
//
//	result, err := p.Extract("stego.wav")       // reads stego.wav.info
//	result, err := p.ExtractWithInfo("stego.wav", info)
//
// The extracted plaintext is classified back into its payload kind: a
// document record is decoded and carries its original filename, raw base64
// image data is decoded to bytes, anything else is returned as text.
//
// # Carriers
//
// Carriers may be WAV, AIFF, MP3 or Ogg Vorbis; see the wavio subpackage.
// Capacity is roughly one bit per two samples at one decomposition level,
// and is checked before anything is written.
package stegwave
