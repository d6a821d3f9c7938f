// SPDX-License-Identifier: EPL-2.0

// Package crypt holds the symmetric core shared by both hybrid layers:
// single-use 128-bit session keys, AES-CBC with a random IV, PKCS#7 padding,
// and the textual blob form base64(IV || ciphertext).
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SessionKeySize is the length in bytes of a symmetric session key (AES-128).
const SessionKeySize = 16

// NewSessionKey returns a fresh random session key. Each key is meant to
// protect exactly one ciphertext.
func NewSessionKey() ([]byte, error) {
	key := make([]byte, SessionKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	return key, nil
}

// Seal encrypts plaintext under key with AES-CBC and a random IV, returning
// base64(IV || ciphertext).
func Seal(key, plaintext []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", ErrKeySize
	}

	padded := pad(plaintext, aes.BlockSize)
	buf := make([]byte, aes.BlockSize+len(padded))

	iv := buf[:aes.BlockSize]
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(buf[aes.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(buf), nil
}

// Open reverses Seal. The IV is taken from the blob's leading block. A blob
// whose length is not the IV plus a whole number of non-zero blocks is
// rejected before any decryption; a padding failure afterwards signals a
// corrupted ciphertext or the wrong key.
func Open(key []byte, blob string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decode blob: %w", err)
	}
	if len(raw) < 2*aes.BlockSize {
		return nil, ErrShortBlob
	}
	if (len(raw)-aes.BlockSize)%aes.BlockSize != 0 {
		return nil, ErrBlobLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrKeySize
	}

	iv := raw[:aes.BlockSize]
	ciphertext := raw[aes.BlockSize:]

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return unpad(plaintext, aes.BlockSize)
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrBadPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrBadPadding
		}
	}
	return data[:len(data)-n], nil
}
