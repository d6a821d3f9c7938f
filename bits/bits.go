// SPDX-License-Identifier: EPL-2.0

// Package bits converts between text and its binary-string form,
// eight bits per character, most significant bit first.
package bits

import "strings"

// TextToBits converts s into a string of '0'/'1' runes, eight per character.
// Characters above U+00FF do not fit a single 8-bit group and are rejected
// with ErrWideRune.
func TextToBits(s string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(s) * 8)

	for _, r := range s {
		if r > 0xFF {
			return "", ErrWideRune
		}
		for i := 7; i >= 0; i-- {
			if r&(1<<i) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}

	return sb.String(), nil
}

// BitsToText is the inverse of TextToBits. A trailing group shorter than
// eight bits is dropped. Runes other than '0' and '1' are rejected with
// ErrNotBinary.
func BitsToText(bitstr string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(bitstr) / 8)

	for i := 0; i+8 <= len(bitstr); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			switch bitstr[i+j] {
			case '1':
				b = b<<1 | 1
			case '0':
				b <<= 1
			default:
				return "", ErrNotBinary
			}
		}
		sb.WriteRune(rune(b))
	}

	// Validate the dropped tail too, a corrupt tail should not pass silently.
	for i := len(bitstr) - len(bitstr)%8; i < len(bitstr); i++ {
		if bitstr[i] != '0' && bitstr[i] != '1' {
			return "", ErrNotBinary
		}
	}

	return sb.String(), nil
}
