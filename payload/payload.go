// SPDX-License-Identifier: EPL-2.0

// Package payload classifies decrypted plaintext and converts files to the
// textual forms the pipeline embeds.
//
// Classification is structural, not declared: a JSON document record wins,
// then a long base64-only string is taken for an image, and everything else
// is plain text. Short strings that happen to be all base64 alphabet stay
// text; that ambiguity is accepted.
package payload

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind tags the three payload shapes.
type Kind int

const (
	Text Kind = iota
	Image
	Document
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Image:
		return "image"
	case Document:
		return "document"
	default:
		return "unknown"
	}
}

// documentTag is the type marker of an embedded document record.
const documentTag = "document"

// record is the wire form of a document payload.
type record struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Result is a classified plaintext. Text carries the string itself; Image
// carries the decoded bytes; Document carries the decoded bytes plus the
// filename declared by the sender.
type Result struct {
	Kind     Kind
	Text     string
	Data     []byte
	Filename string
}

// imageDetectLimit bounds how many leading runes are scanned for the base64
// alphabet before a trial decode.
const imageDetectLimit = 1000

// minImageLength is the shortest plaintext ever considered an image.
const minImageLength = 100

// EncodeImage reads a file and returns its raw base64 form for embedding.
func EncodeImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// EncodeDocument reads a file and wraps it in a document record carrying its
// base name, so extraction can restore it under the original name.
func EncodeDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	raw, err := json.Marshal(record{
		Type:     documentTag,
		Filename: filepath.Base(path),
		Content:  base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal document record: %w", err)
	}

	return string(raw), nil
}

// Classify routes decrypted plaintext to its consumer shape.
func Classify(plaintext string) (*Result, error) {
	if rec, ok := parseRecord(plaintext); ok {
		data, err := base64.StdEncoding.DecodeString(rec.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadDocument, err)
		}
		return &Result{Kind: Document, Data: data, Filename: rec.Filename}, nil
	}

	if data, ok := sniffImage(plaintext); ok {
		return &Result{Kind: Image, Data: data}, nil
	}

	return &Result{Kind: Text, Text: plaintext}, nil
}

func parseRecord(plaintext string) (record, bool) {
	var rec record
	if err := json.Unmarshal([]byte(plaintext), &rec); err != nil {
		return record{}, false
	}
	if rec.Type != documentTag {
		return record{}, false
	}
	return rec, true
}

func sniffImage(plaintext string) ([]byte, bool) {
	// Browser-style data URI, as some senders produce.
	if strings.HasPrefix(plaintext, "data:image") {
		_, b64, found := strings.Cut(plaintext, ",")
		if !found {
			return nil, false
		}
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, false
		}
		return data, true
	}

	if len(plaintext) <= minImageLength {
		return nil, false
	}

	head := plaintext
	if len(head) > imageDetectLimit {
		head = head[:imageDetectLimit]
	}
	for _, r := range head {
		if !isBase64Rune(r) {
			return nil, false
		}
	}

	data, err := base64.StdEncoding.DecodeString(plaintext)
	if err != nil {
		return nil, false
	}
	return data, true
}

func isBase64Rune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '+' || r == '/' || r == '=':
		return true
	default:
		return false
	}
}
