// SPDX-License-Identifier: EPL-2.0

// Package ecc is the inner hybrid layer. It owns a P-256 key pair exported
// in PEM form, and encrypts with a fresh AES-128 session key per call.
//
// The session key is returned unwrapped (base64 only): on its own this layer
// offers no key confidentiality, and the pipeline relies on the outer RSA
// layer to protect it. The key pair is still generated and published so the
// embedded header carries it verbatim.
package ecc

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"

	"stegwave/crypt"
)

// Crypto is one instance of the inner layer. The zero value is usable: a key
// pair is generated lazily on first use.
type Crypto struct {
	priv *ecdsa.PrivateKey
	pub  *ecdsa.PublicKey
}

// New returns an empty instance. Key material appears on first use or via
// LoadKey.
func New() *Crypto { return &Crypto{} }

func (c *Crypto) ensureKey() error {
	if c.priv != nil || c.pub != nil {
		return nil
	}
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate P-256 key: %w", err)
	}
	c.priv = key
	c.pub = &key.PublicKey
	return nil
}

// PublicKey exports the public key in PEM form, generating a pair first if
// none is present.
func (c *Crypto) PublicKey() (string, error) {
	if err := c.ensureKey(); err != nil {
		return "", err
	}
	der, err := x509.MarshalPKIXPublicKey(c.pub)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}

// PrivateKey exports the private key in PEM form, generating a pair first if
// none is present. Loading only a public key beforehand makes this fail with
// ErrNoPrivateKey.
func (c *Crypto) PrivateKey() (string, error) {
	if err := c.ensureKey(); err != nil {
		return "", err
	}
	if c.priv == nil {
		return "", ErrNoPrivateKey
	}
	der, err := x509.MarshalECPrivateKey(c.priv)
	if err != nil {
		return "", fmt.Errorf("failed to marshal private key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})), nil
}

// LoadKey replaces the key material from a PEM record, inferring public
// versus private from the block type.
func (c *Crypto) LoadKey(text string) error {
	block, _ := pem.Decode([]byte(text))
	if block == nil {
		return ErrBadKey
	}

	switch block.Type {
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadKey, err)
		}
		c.priv = key
		c.pub = &key.PublicKey

	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadKey, err)
		}
		key, ok := parsed.(*ecdsa.PrivateKey)
		if !ok {
			return ErrBadKey
		}
		c.priv = key
		c.pub = &key.PublicKey

	case "PUBLIC KEY":
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadKey, err)
		}
		pub, ok := parsed.(*ecdsa.PublicKey)
		if !ok {
			return ErrBadKey
		}
		c.priv = nil
		c.pub = pub

	default:
		return ErrBadKey
	}

	return nil
}

// Encrypt seals plaintext under a fresh session key and returns the blob
// together with the session key, base64 encoded and unwrapped. A key pair is
// generated if absent so the caller can publish it alongside.
func (c *Crypto) Encrypt(plaintext string) (blob, sessionKey string, err error) {
	if err := c.ensureKey(); err != nil {
		return "", "", err
	}

	key, err := crypt.NewSessionKey()
	if err != nil {
		return "", "", err
	}

	blob, err = crypt.Seal(key, []byte(plaintext))
	if err != nil {
		return "", "", err
	}

	return blob, base64.StdEncoding.EncodeToString(key), nil
}

// Decrypt reverses Encrypt given the blob and the base64 session key.
func (c *Crypto) Decrypt(blob, sessionKey string) (string, error) {
	key, err := base64.StdEncoding.DecodeString(sessionKey)
	if err != nil {
		return "", fmt.Errorf("failed to decode session key: %w", err)
	}

	plaintext, err := crypt.Open(key, blob)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
