/*
Package punycode implements the Bootstring encoding of RFC 3492, the
character encoding scheme used by IDNA to represent Unicode labels in
the letter-digit-hyphen subset of ASCII.

The codec operates on one label at a time and is self-contained: it has
no notion of domains, separators or the IDNA mapping step. Higher layers
compose it per label (see package idna). All internal arithmetic is
bounded by maxInt = 2^31 − 1; exceeding the bound is a terminal error
for the label, never silently widened.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package punycode

import (
	"errors"
	"strings"
)

// Bootstring parameters for Punycode, RFC 3492 section 5.
const (
	base        int32 = 36
	tMin        int32 = 1
	tMax        int32 = 26
	skew        int32 = 38
	damp        int32 = 700
	initialBias int32 = 72
	initialN    int32 = 128
	delimiter   byte  = '-'

	baseMinusTMin = base - tMin

	// maxInt caps all delta/weight arithmetic. The cap is part of the
	// wire contract, not a property of the host integer type.
	maxInt int32 = 2147483647
)

// ACEPrefix marks a Punycode-encoded label inside an ASCII domain.
const ACEPrefix = "xn--"

var (
	// ErrOverflow means the input needs wider integers to process.
	ErrOverflow = errors.New("punycode: overflow")
	// ErrNotBasic means a non-ASCII byte appeared before the delimiter.
	ErrNotBasic = errors.New("punycode: illegal input >= 0x80 (not a basic code point)")
	// ErrInvalidInput means the input ended in the middle of a
	// variable-length integer.
	ErrInvalidInput = errors.New("punycode: invalid input")
)

// Encoder converts a codepoint sequence to a byte string.
// A nil Encoder means UTF-8.
type Encoder func(cps []rune) []byte

// Decoder converts a byte string to a codepoint sequence.
// A nil Decoder means UTF-8.
type Decoder func(b []byte) []rune

func utf8Encode(cps []rune) []byte { return []byte(string(cps)) }
func utf8Decode(b []byte) []rune   { return []rune(string(b)) }

// adapt is the bias adaptation function, RFC 3492 section 6.1.
func adapt(delta, numPoints int32, firstTime bool) int32 {
	if firstTime {
		delta /= damp
	} else {
		delta /= 2
	}
	delta += delta / numPoints
	k := int32(0)
	for delta > baseMinusTMin*tMax/2 {
		delta /= baseMinusTMin
		k += base
	}
	return k + (baseMinusTMin+1)*delta/(delta+skew)
}

// basicToDigit maps a basic code point to its digit value, or returns
// base as a sentinel for non-digits.
func basicToDigit(b byte) int32 {
	switch {
	case b >= '0' && b <= '9':
		return int32(b) - 22
	case b >= 'A' && b <= 'Z':
		return int32(b) - 'A'
	case b >= 'a' && b <= 'z':
		return int32(b) - 'a'
	}
	return base
}

// digitToBasic maps a digit value 0..35 to its lowercase basic code point.
func digitToBasic(digit int32) byte {
	if digit < 26 {
		return byte(digit) + 'a'
	}
	return byte(digit) - 26 + '0'
}

func clampT(k, bias int32) int32 {
	t := k - bias
	if t < tMin {
		return tMin
	}
	if t > tMax {
		return tMax
	}
	return t
}

// encodeRunes encodes one label's codepoints to Bootstring ASCII,
// without the ACE prefix. RFC 3492 section 6.3.
func encodeRunes(input []rune) (string, error) {
	n, delta, bias := initialN, int32(0), initialBias
	output := make([]byte, 0, len(input)+8)
	for _, cp := range input {
		if cp < 0x80 {
			output = append(output, byte(cp))
		}
	}
	basicLength := len(output)
	handled := basicLength
	if basicLength > 0 {
		output = append(output, delimiter)
	}
	for handled < len(input) {
		// Find the next codepoint value to cover.
		m := maxInt
		for _, cp := range input {
			if cp >= n && cp < m {
				m = cp
			}
		}
		h := int32(handled) + 1
		if m-n > (maxInt-delta)/h {
			return "", ErrOverflow
		}
		delta += (m - n) * h
		n = m
		for _, cp := range input {
			if cp < n {
				if delta >= maxInt {
					return "", ErrOverflow
				}
				delta++
			}
			if cp == n {
				// Emit delta as a variable-length integer.
				q := delta
				for k := base; ; k += base {
					t := clampT(k, bias)
					if q < t {
						break
					}
					output = append(output, digitToBasic(t+(q-t)%(base-t)))
					q = (q - t) / (base - t)
				}
				output = append(output, digitToBasic(q))
				bias = adapt(delta, int32(handled)+1, handled == basicLength)
				delta = 0
				handled++
			}
		}
		delta++
		n++
	}
	return string(output), nil
}

// decodeRunes decodes one label's Bootstring ASCII (without the ACE
// prefix) back to codepoints. RFC 3492 section 6.2.
func decodeRunes(s string) ([]rune, error) {
	output := make([]rune, 0, len(s))
	pos := 0
	if b := strings.LastIndexByte(s, delimiter); b > 0 {
		for i := 0; i < b; i++ {
			if s[i] >= 0x80 {
				return nil, ErrNotBasic
			}
			output = append(output, rune(s[i]))
		}
		pos = b + 1
	}
	i, n, bias := int32(0), initialN, initialBias
	for pos < len(s) {
		oldi, w, k := i, int32(1), base
		for {
			if pos == len(s) {
				return nil, ErrInvalidInput
			}
			digit := basicToDigit(s[pos])
			pos++
			if digit >= base || digit > (maxInt-i)/w {
				return nil, ErrOverflow
			}
			i += digit * w
			t := clampT(k, bias)
			if digit < t {
				break
			}
			if w > maxInt/(base-t) {
				return nil, ErrOverflow
			}
			w *= base - t
			k += base
		}
		out := int32(len(output)) + 1
		bias = adapt(i-oldi, out, oldi == 0)
		if i/out > maxInt-n {
			return nil, ErrOverflow
		}
		n += i / out
		i %= out
		// Insert n at position i, shifting the tail right.
		output = append(output, 0)
		copy(output[i+1:], output[i:])
		output[i] = n
		i++
	}
	return output, nil
}

// Encode converts a string of Unicode symbols to a Punycode string of
// ASCII-only symbols. The input is one label; separators receive no
// special treatment.
func Encode(s string) (string, error) {
	return encodeRunes([]rune(s))
}

// Decode converts a Punycode string of ASCII-only symbols back to a
// string of Unicode symbols.
func Decode(s string) (string, error) {
	cps, err := decodeRunes(s)
	if err != nil {
		return "", err
	}
	return string(cps), nil
}

// EncodeLabel converts one domain label to its ACE form. Labels that
// decode to pure ASCII are returned unchanged; all others are encoded
// and prefixed with "xn--". dec converts the label's bytes to
// codepoints (nil means UTF-8).
func EncodeLabel(label string, dec Decoder) (string, error) {
	if dec == nil {
		dec = utf8Decode
	}
	cps := dec([]byte(label))
	ascii := true
	for _, cp := range cps {
		if cp >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return label, nil
	}
	encoded, err := encodeRunes(cps)
	if err != nil {
		return "", err
	}
	return ACEPrefix + encoded, nil
}

// DecodeLabel converts one ACE label back to Unicode. Labels without
// the "xn--" prefix are returned unchanged. The prefix match is
// case-insensitive and the payload is lowercased before decoding;
// uppercase ACE digits are legal input. enc converts the decoded
// codepoints back to bytes (nil means UTF-8).
func DecodeLabel(label string, enc Encoder) (string, error) {
	if len(label) < len(ACEPrefix) || !strings.EqualFold(label[:len(ACEPrefix)], ACEPrefix) {
		return label, nil
	}
	if enc == nil {
		enc = utf8Encode
	}
	cps, err := decodeRunes(strings.ToLower(label[len(ACEPrefix):]))
	if err != nil {
		return "", err
	}
	return string(enc(cps)), nil
}
