// SPDX-License-Identifier: EPL-2.0

package stegwave_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"stegwave"
	"stegwave/wavio"
)

// Example_embedAndExtract demonstrates the full round trip: hide a text
// message in a synthesized carrier, then recover it through the sidecar.
func Example_embedAndExtract() {
	dir, err := os.MkdirTemp("", "stegwave")
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	// A ten-second tone has far more capacity than a short message needs.
	carrier := filepath.Join(dir, "carrier.wav")
	if err := wavio.WriteFile(carrier, wavio.Sine(440, 10, 44100)); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	p, err := stegwave.New(stegwave.DefaultConfig())
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	stego := filepath.Join(dir, "stego.wav")
	if _, err := p.Embed(carrier, stego, stegwave.Text("HELLO")); err != nil {
		fmt.Printf("embed error: %v\n", err)
		return
	}

	// Extract reads stego.wav.info for the bit count and key material.
	result, err := p.Extract(stego)
	if err != nil {
		fmt.Printf("extract error: %v\n", err)
		return
	}

	fmt.Printf("Extracted %s payload: %s\n", result.Kind, result.Text)
	// Output: Extracted text payload: HELLO
}

// Example_capacityCheck shows that an oversized message is rejected before
// anything touches the filesystem.
func Example_capacityCheck() {
	dir, err := os.MkdirTemp("", "stegwave")
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	// A quarter-second carrier cannot hold the keys alone.
	carrier := filepath.Join(dir, "tiny.wav")
	if err := wavio.WriteFile(carrier, wavio.Sine(440, 0.25, 8000)); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	p, err := stegwave.New(stegwave.DefaultConfig())
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	stego := filepath.Join(dir, "stego.wav")
	_, err = p.Embed(carrier, stego, stegwave.Text("does not fit"))
	if errors.Is(err, stegwave.ErrCapacity) {
		fmt.Println("capacity exceeded, nothing written")
	}
	// Output: capacity exceeded, nothing written
}
