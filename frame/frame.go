// SPDX-License-Identifier: EPL-2.0

// Package frame serializes an encrypted payload and its header into one
// self-describing bitstream:
//
//	[32-bit header length][header bits][payload bits]
//
// The header is a JSON record binding both layers' public keys, the wrapped
// outer session key and the original plaintext length. There is no payload
// terminator: the extractor must already know the total embedded bit count
// and hand the stream over in full.
package frame

import (
	"encoding/json"
	"fmt"
	"strconv"

	"stegwave/bits"
)

// PrefixBits is the width of the header-length prefix.
const PrefixBits = 32

// Header describes one embedded message. Field names on the wire follow the
// sidecar records.
type Header struct {
	ECCPublicKey  string `json:"ecc_public_key"`
	RSAPublicKey  string `json:"rsa_public_key"`
	MessageLength int    `json:"message_length"`
	RSAKey        string `json:"rsa_key"`
}

// Build serializes the header and concatenates the length prefix, header
// bits and payload bits. The header marshals deterministically, so the frame
// bit length is known before embedding.
func Build(h Header, payloadBits string) (string, error) {
	raw, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	headerBits, err := bits.TextToBits(string(raw))
	if err != nil {
		return "", fmt.Errorf("failed to encode header: %w", err)
	}
	if len(headerBits) > int(^uint32(0)) {
		return "", ErrHeaderTooLarge
	}

	prefix := fmt.Sprintf("%032b", uint32(len(headerBits)))

	return prefix + headerBits + payloadBits, nil
}

// Parse splits a bitstream produced by Build back into the header and the
// payload bits. All failure modes are reported before any payload is
// returned: a stream under 32 bits, a header length beyond the stream, a
// header that is not valid JSON, or one missing its key material.
func Parse(bitstr string) (Header, string, error) {
	if len(bitstr) < PrefixBits {
		return Header{}, "", ErrShortFrame
	}

	headerLen, err := strconv.ParseUint(bitstr[:PrefixBits], 2, 32)
	if err != nil {
		return Header{}, "", fmt.Errorf("%w: %w", ErrBadPrefix, err)
	}

	if uint64(len(bitstr)-PrefixBits) < headerLen {
		return Header{}, "", ErrTruncatedHeader
	}

	headerBits := bitstr[PrefixBits : PrefixBits+int(headerLen)]
	headerJSON, err := bits.BitsToText(headerBits)
	if err != nil {
		return Header{}, "", fmt.Errorf("failed to decode header bits: %w", err)
	}

	var h Header
	if err := json.Unmarshal([]byte(headerJSON), &h); err != nil {
		return Header{}, "", fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if h.ECCPublicKey == "" || h.RSAPublicKey == "" || h.RSAKey == "" {
		return Header{}, "", ErrMissingField
	}

	return h, bitstr[PrefixBits+int(headerLen):], nil
}
