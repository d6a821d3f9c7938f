// SPDX-License-Identifier: EPL-2.0

package stegwave

import "errors"

var (
	// ErrEmptyMessage is returned when an embed is attempted with no payload.
	ErrEmptyMessage = errors.New("stegwave: empty message")

	// ErrCapacity is returned when the framed message does not fit into the
	// carrier's detail band. Nothing is written in that case.
	ErrCapacity = errors.New("stegwave: message exceeds carrier capacity")

	// ErrMissingInfo is returned by Extract when no .info sidecar exists next
	// to the stego file. Use ExtractWithInfo to supply the record directly.
	ErrMissingInfo = errors.New("stegwave: info sidecar not found")

	// ErrBadPayload is returned when the extracted payload bits do not decode
	// to the expected ciphertext literal.
	ErrBadPayload = errors.New("stegwave: malformed payload")
)
