package ecc

import "errors"

var (
	ErrBadKey       = errors.New("not a PEM-encoded P-256 key")
	ErrNoPrivateKey = errors.New("only a public key is loaded")
)
