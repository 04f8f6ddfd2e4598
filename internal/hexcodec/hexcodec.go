// Package hexcodec converts between raw bytes and their two-digit
// upper-case hexadecimal text form.
package hexcodec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidHexDigit reports a character outside [0-9A-Fa-f].
	ErrInvalidHexDigit = errors.New("invalid hex digit")

	// ErrOddLength reports input with an unpaired trailing digit.
	ErrOddLength = errors.New("odd number of hex digits")
)

const digits = "0123456789ABCDEF"

// Encode returns the storage form: two upper-case digits per byte, no
// separators. Encode(nil) == "".
func Encode(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) * 2)
	for _, c := range data {
		b.WriteByte(digits[c>>4])
		b.WriteByte(digits[c&0x0F])
	}
	return b.String()
}

// EncodeDisplay returns the display form: one "XX " group per byte,
// including a trailing space. Sixteen bytes yield exactly 48
// characters, the width of a dump row's hex column.
func EncodeDisplay(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) * 3)
	for _, c := range data {
		b.WriteByte(digits[c>>4])
		b.WriteByte(digits[c&0x0F])
		b.WriteByte(' ')
	}
	return b.String()
}

// Decode converts a hex string back to bytes, two digits per byte.
// Separators are not skipped; callers strip them first. Empty input
// decodes to an empty slice.
func Decode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)/2)
	var cur byte
	nibbles := 0
	for _, r := range s {
		n, ok := nibble(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHexDigit, r)
		}
		cur = cur<<4 | n
		nibbles++
		if nibbles == 2 {
			out = append(out, cur)
			cur = 0
			nibbles = 0
		}
	}
	if nibbles != 0 {
		return nil, ErrOddLength
	}
	return out, nil
}

func nibble(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}
