// SPDX-License-Identifier: EPL-2.0

// Package rsa is the outer hybrid layer: AES-128-CBC for the bulk data and
// RSA-OAEP (SHA-256) protection of the session key under the layer's own
// public key. Decryption unwraps the session key first, so a wrong private
// key surfaces as ErrKeyMismatch before any bulk decryption happens.
package rsa

import (
	"crypto/rand"
	stdrsa "crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"

	"stegwave/crypt"
)

// DefaultBits is the modulus size used when none is configured.
const DefaultBits = 2048

// Crypto is one instance of the outer layer. The zero value is usable: a
// DefaultBits key pair is generated lazily on first use.
type Crypto struct {
	priv *stdrsa.PrivateKey
	pub  *stdrsa.PublicKey
	bits int
}

// New returns an empty instance generating bits-sized keys on demand.
// bits <= 0 selects DefaultBits.
func New(bits int) *Crypto {
	if bits <= 0 {
		bits = DefaultBits
	}
	return &Crypto{bits: bits}
}

func (c *Crypto) ensureKey() error {
	if c.priv != nil || c.pub != nil {
		return nil
	}
	if c.bits <= 0 {
		c.bits = DefaultBits
	}
	key, err := stdrsa.GenerateKey(rand.Reader, c.bits)
	if err != nil {
		return fmt.Errorf("failed to generate RSA-%d key: %w", c.bits, err)
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
	der := x509.MarshalPKCS1PrivateKey(c.priv)
	return string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: der})), nil
}

// LoadKey replaces the key material from a PEM record, inferring public
// versus private from the block type.
func (c *Crypto) LoadKey(text string) error {
	block, _ := pem.Decode([]byte(text))
	if block == nil {
		return ErrBadKey
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
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
		key, ok := parsed.(*stdrsa.PrivateKey)
		if !ok {
			return ErrBadKey
		}
		c.priv = key
		c.pub = &key.PublicKey

	case "RSA PUBLIC KEY":
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadKey, err)
		}
		c.priv = nil
		c.pub = pub

	case "PUBLIC KEY":
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadKey, err)
		}
		pub, ok := parsed.(*stdrsa.PublicKey)
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

// Encrypt seals plaintext under a fresh session key and wraps that key with
// RSA-OAEP under the layer's own public key. It returns the blob and the
// wrapped key, both base64 encoded.
func (c *Crypto) Encrypt(plaintext string) (blob, wrappedKey string, err error) {
	if err := c.ensureKey(); err != nil {
		return "", "", err
	}

	key, err := crypt.NewSessionKey()
	if err != nil {
		return "", "", err
	}

	wrapped, err := stdrsa.EncryptOAEP(sha256.New(), rand.Reader, c.pub, key, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to wrap session key: %w", err)
	}

	blob, err = crypt.Seal(key, []byte(plaintext))
	if err != nil {
		return "", "", err
	}

	return blob, base64.StdEncoding.EncodeToString(wrapped), nil
}

// Decrypt unwraps the session key with the private key, then opens the blob.
// An OAEP failure means the private key does not match the wrapping public
// key (or the wrapped key is corrupted) and is reported as ErrKeyMismatch.
func (c *Crypto) Decrypt(blob, wrappedKey string) (string, error) {
	if c.priv == nil {
		return "", ErrNoPrivateKey
	}

	wrapped, err := base64.StdEncoding.DecodeString(wrappedKey)
	if err != nil {
		return "", fmt.Errorf("failed to decode wrapped session key: %w", err)
	}

	key, err := stdrsa.DecryptOAEP(sha256.New(), rand.Reader, c.priv, wrapped, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrKeyMismatch, err)
	}

	plaintext, err := crypt.Open(key, blob)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
