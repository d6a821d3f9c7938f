package crypt

import "errors"

var (
	ErrKeySize    = errors.New("session key must be 16 bytes")
	ErrShortBlob  = errors.New("blob shorter than IV plus one block")
	ErrBlobLength = errors.New("blob length is not the IV plus whole blocks")
	ErrBadPadding = errors.New("invalid padding: corrupted ciphertext or wrong key")
)
