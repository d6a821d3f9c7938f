package rsa

import "errors"

var (
	ErrBadKey       = errors.New("not a PEM-encoded RSA key")
	ErrNoPrivateKey = errors.New("no private key loaded")
	ErrKeyMismatch  = errors.New("failed to unwrap session key: wrong private key or corrupted data")
)
