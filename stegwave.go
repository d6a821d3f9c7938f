// SPDX-License-Identifier: EPL-2.0

package stegwave

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"stegwave/bits"
	"stegwave/crypt/ecc"
	"stegwave/crypt/rsa"
	"stegwave/dwt"
	"stegwave/frame"
	"stegwave/payload"
	"stegwave/qim"
	"stegwave/wavio"
)

// Config selects the transform and crypto parameters for a Pipeline.
type Config struct {
	// Wavelet names the decomposition basis: "haar", "db2" or "db4".
	Wavelet string
	// Level is the decomposition depth, at least 1.
	Level int
	// Alpha is the embedding strength. Larger values survive more noise but
	// perturb the carrier more audibly.
	Alpha float64
	// RSABits is the outer key-pair modulus size.
	RSABits int
}

// DefaultConfig returns the standard parameters: db2 at level 1 with
// alpha 0.001 and RSA-2048.
func DefaultConfig() Config {
	return Config{Wavelet: "db2", Level: 1, Alpha: 0.001, RSABits: rsa.DefaultBits}
}

// Pipeline embeds and extracts encrypted payloads in audio carriers. A
// Pipeline holds no per-call state: every Embed generates fresh key material,
// so concurrent calls on distinct files need no coordination.
type Pipeline struct {
	cfg       Config
	transform *dwt.Transform
	codec     *qim.Codec
}

// New builds a Pipeline from cfg, validating the wavelet name, level and
// embedding strength up front.
func New(cfg Config) (*Pipeline, error) {
	transform, err := dwt.New(cfg.Wavelet, cfg.Level)
	if err != nil {
		return nil, err
	}
	codec, err := qim.New(cfg.Alpha)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, transform: transform, codec: codec}, nil
}

// Message is the payload handed to Embed: plain text, or a file to be read
// and encoded at embed time.
type Message struct {
	kind payload.Kind
	text string
	path string
}

// Text wraps a plain-text payload.
func Text(s string) Message { return Message{kind: payload.Text, text: s} }

// ImageFile wraps an image payload read from path at embed time.
func ImageFile(path string) Message { return Message{kind: payload.Image, path: path} }

// DocumentFile wraps a document payload read from path at embed time. The
// file's base name travels with the content and is restored on extraction.
func DocumentFile(path string) Message { return Message{kind: payload.Document, path: path} }

// plaintext resolves the message into the string that enters the inner
// encryption layer.
func (m Message) plaintext() (string, error) {
	switch m.kind {
	case payload.Image:
		return payload.EncodeImage(m.path)
	case payload.Document:
		return payload.EncodeDocument(m.path)
	default:
		return m.text, nil
	}
}

// Info is the sidecar record written next to the stego file. It carries
// everything extraction needs: the embedded bit count, both key pairs and
// the embedding strength.
type Info struct {
	BitsLength    int     `json:"bits_length"`
	ECCPublicKey  string  `json:"ecc_public_key"`
	ECCPrivateKey string  `json:"ecc_private_key"`
	RSAPublicKey  string  `json:"rsa_public_key"`
	RSAPrivateKey string  `json:"rsa_private_key"`
	MessageLength int     `json:"message_length"`
	Alpha         float64 `json:"alpha"`
}

// Save writes the record as JSON.
func (i *Info) Save(path string) error {
	raw, err := json.Marshal(i)
	if err != nil {
		return fmt.Errorf("failed to marshal info record: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write info record: %w", err)
	}
	return nil
}

// LoadInfo reads a sidecar record written by Embed.
func LoadInfo(path string) (*Info, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read info record: %w", err)
	}
	var info Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("failed to parse info record: %w", err)
	}
	return &info, nil
}

// envelope is the inner-layer JSON binding the ECC ciphertext to its
// session key before the outer layer seals both.
type envelope struct {
	ECCData string `json:"ecc_data"`
	ECCKey  string `json:"ecc_key"`
}

// Embed hides msg inside the carrier at inputPath and writes the stego
// waveform to outputPath, along with outputPath+".key" (a labeled key-pair
// dump) and outputPath+".info" (the Info sidecar).
//
// The message is encrypted twice, ECC then RSA, framed with a header that
// binds the public keys and wrapped session key, and modulated into the
// carrier's coarsest detail band. The capacity check happens before any
// coefficient is touched or any file is written.
func (p *Pipeline) Embed(inputPath, outputPath string, msg Message) (*Info, error) {
	plaintext, err := msg.plaintext()
	if err != nil {
		return nil, err
	}
	if plaintext == "" {
		return nil, ErrEmptyMessage
	}

	clip, err := wavio.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	eccCrypto := ecc.New()
	eccData, eccKey, err := eccCrypto.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}

	combined, err := json.Marshal(envelope{ECCData: eccData, ECCKey: eccKey})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	rsaCrypto := rsa.New(p.cfg.RSABits)
	rsaData, rsaKey, err := rsaCrypto.Encrypt(string(combined))
	if err != nil {
		return nil, err
	}

	eccPub, err := eccCrypto.PublicKey()
	if err != nil {
		return nil, err
	}
	rsaPub, err := rsaCrypto.PublicKey()
	if err != nil {
		return nil, err
	}

	header := frame.Header{
		ECCPublicKey:  eccPub,
		RSAPublicKey:  rsaPub,
		MessageLength: utf8.RuneCountInString(plaintext),
		RSAKey:        rsaKey,
	}

	// The ciphertext travels as a JSON string literal, matching the header's
	// encoding.
	payloadJSON, err := json.Marshal(rsaData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	payloadBits, err := bits.TextToBits(string(payloadJSON))
	if err != nil {
		return nil, err
	}

	allBits, err := frame.Build(header, payloadBits)
	if err != nil {
		return nil, err
	}

	coeffs, err := p.transform.Decompose(clip.Mono())
	if err != nil {
		return nil, err
	}
	if len(allBits) > coeffs.Capacity() {
		return nil, fmt.Errorf("%w: need %d bits, band holds %d",
			ErrCapacity, len(allBits), coeffs.Capacity())
	}

	if err := p.codec.Embed(coeffs.Band(), allBits); err != nil {
		return nil, err
	}
	reconstructed, err := p.transform.Reconstruct(coeffs)
	if err != nil {
		return nil, err
	}

	if err := wavio.WriteFile(outputPath, mergeChannels(clip, reconstructed)); err != nil {
		return nil, err
	}

	eccPriv, err := eccCrypto.PrivateKey()
	if err != nil {
		return nil, err
	}
	rsaPriv, err := rsaCrypto.PrivateKey()
	if err != nil {
		return nil, err
	}

	if err := writeKeyDump(outputPath+".key", eccPub, eccPriv, rsaPub, rsaPriv); err != nil {
		return nil, err
	}

	info := &Info{
		BitsLength:    len(allBits),
		ECCPublicKey:  eccPub,
		ECCPrivateKey: eccPriv,
		RSAPublicKey:  rsaPub,
		RSAPrivateKey: rsaPriv,
		MessageLength: header.MessageLength,
		Alpha:         p.cfg.Alpha,
	}
	if err := info.Save(outputPath + ".info"); err != nil {
		return nil, err
	}
	return info, nil
}

// Extract recovers the payload from the stego file at stegoPath, reading the
// bit count and key material from the .info sidecar next to it.
func (p *Pipeline) Extract(stegoPath string) (*payload.Result, error) {
	info, err := LoadInfo(stegoPath + ".info")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrMissingInfo
		}
		return nil, err
	}
	return p.ExtractWithInfo(stegoPath, info)
}

// ExtractWithInfo recovers the payload using a caller-supplied sidecar
// record, for when the .info file travelled over a different channel.
func (p *Pipeline) ExtractWithInfo(stegoPath string, info *Info) (*payload.Result, error) {
	codec := p.codec
	if info.Alpha > 0 && info.Alpha != p.cfg.Alpha {
		var err error
		codec, err = qim.New(info.Alpha)
		if err != nil {
			return nil, err
		}
	}

	clip, err := wavio.ReadFile(stegoPath)
	if err != nil {
		return nil, err
	}
	coeffs, err := p.transform.Decompose(clip.Mono())
	if err != nil {
		return nil, err
	}

	allBits := codec.Extract(coeffs.Band(), info.BitsLength)

	header, payloadBits, err := frame.Parse(allBits)
	if err != nil {
		return nil, err
	}

	payloadJSON, err := bits.BitsToText(payloadBits)
	if err != nil {
		return nil, err
	}
	var rsaData string
	if err := json.Unmarshal([]byte(payloadJSON), &rsaData); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}

	rsaCrypto := rsa.New(p.cfg.RSABits)
	if info.RSAPrivateKey != "" {
		if err := rsaCrypto.LoadKey(info.RSAPrivateKey); err != nil {
			return nil, err
		}
	}
	combined, err := rsaCrypto.Decrypt(rsaData, header.RSAKey)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal([]byte(combined), &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}

	eccCrypto := ecc.New()
	if info.ECCPrivateKey != "" {
		if err := eccCrypto.LoadKey(info.ECCPrivateKey); err != nil {
			return nil, err
		}
	}
	plaintext, err := eccCrypto.Decrypt(env.ECCData, env.ECCKey)
	if err != nil {
		return nil, err
	}

	return payload.Classify(plaintext)
}

// mergeChannels rebuilds the output clip: channel 0 carries the
// reconstructed samples, the remaining channels pass through unchanged, and
// every channel is truncated to the shortest length.
func mergeChannels(clip *wavio.Clip, reconstructed []float64) *wavio.Clip {
	n := len(reconstructed)
	if clip.Frames() < n {
		n = clip.Frames()
	}

	channels := make([][]float64, len(clip.Channels))
	channels[0] = reconstructed[:n]
	for ch := 1; ch < len(clip.Channels); ch++ {
		channels[ch] = clip.Channels[ch][:n]
	}
	return &wavio.Clip{Rate: clip.Rate, Channels: channels}
}

func writeKeyDump(path, eccPub, eccPriv, rsaPub, rsaPriv string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create key dump: %w", err)
	}

	fmt.Fprintln(f, "===== ECC KEY PAIR =====")
	fmt.Fprintf(f, "ECC PUBLIC KEY:\n%s\n", eccPub)
	fmt.Fprintf(f, "ECC PRIVATE KEY:\n%s\n", eccPriv)
	fmt.Fprintln(f, "===== RSA KEY PAIR =====")
	fmt.Fprintf(f, "RSA PUBLIC KEY:\n%s\n", rsaPub)
	fmt.Fprintf(f, "RSA PRIVATE KEY:\n%s\n", rsaPriv)

	return f.Close()
}
