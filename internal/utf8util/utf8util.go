// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package utf8util implements the byte level UTF-8 helpers used for indexing
// and searching German and English dictionary text.
//
// Only the German letters of the Latin-1 range (Ä, Ö, Ü, Ë, Ï and ß) receive
// special treatment. Everything else outside ASCII is compared byte for byte.
package utf8util

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadSequence indicates an invalid leading or continuation byte.
	ErrBadSequence = errors.New("bad utf-8 sequence")

	// ErrIncompleteSequence indicates that the input ended in the middle of
	// a multi-byte sequence.
	ErrIncompleteSequence = errors.New("incomplete utf-8 sequence")
)

// Bytes is a byte sequence that can be indexed.
type Bytes interface {
	~string | ~[]byte
}

// leadByte is the first byte of the two byte encoding of all supported
// German letters.
const leadByte = 0xc3

// sharpS is the second byte of ß.
const sharpS = 0x9f

// umlauts maps the second byte of the upper case form to the second byte of
// the lower case form and the ASCII digraph.
var umlauts = []struct {
	upper, lower byte
	digraph      string
}{
	{0x8b, 0xab, "EE"}, // Ë
	{0x9c, 0xbc, "UE"}, // Ü
	{0x96, 0xb6, "OE"}, // Ö
	{0x84, 0xa4, "AE"}, // Ä
	{0x8f, 0xaf, "IE"}, // Ï
}

// SequenceLength returns the length in bytes of the UTF-8 sequence at the
// start of b.
func SequenceLength[T Bytes](b T) (int, error) {
	return sequenceLengthAt(b, 0)
}

func sequenceLengthAt[T Bytes](b T, at int) (int, error) {
	if at >= len(b) {
		return 0, ErrIncompleteSequence
	}

	var n int
	c := b[at]
	switch {
	case c&0x80 == 0:
		return 1, nil
	case c&0xe0 == 0xc0:
		n = 2
	case c&0xf0 == 0xe0:
		n = 3
	case c&0xf8 == 0xf0:
		n = 4
	default:
		return 0, fmt.Errorf("%w: leading byte 0x%02x", ErrBadSequence, c)
	}

	for i := 1; i < n; i++ {
		if at+i >= len(b) {
			return 0, ErrIncompleteSequence
		}
		if b[at+i]&0xc0 != 0x80 {
			return 0, fmt.Errorf("%w: continuation byte 0x%02x", ErrBadSequence, b[at+i])
		}
	}

	return n, nil
}

// CountSequences returns the number of codepoints in b.
func CountSequences[T Bytes](b T) (int, error) {
	var count int
	for i := 0; i < len(b); {
		n, err := sequenceLengthAt(b, i)
		if err != nil {
			return count, fmt.Errorf("at byte %d: %w", i, err)
		}
		i += n
		count++
	}
	return count, nil
}

// Crop returns the prefix of s holding at most max codepoints along with the
// number of codepoints in the prefix. The count is less than max if s is
// shorter.
func Crop(s string, maxCodepoints int) (string, int, error) {
	var i, count int
	for i < len(s) && count < maxCodepoints {
		n, err := sequenceLengthAt(s, i)
		if err != nil {
			return "", 0, fmt.Errorf("at byte %d: %w", i, err)
		}
		i += n
		count++
	}
	return s[:i], count, nil
}

// ToUpper upper-cases ASCII letters and the German umlauts in b in place.
// The ß is left alone as it has no upper case form in the dictionary data.
func ToUpper(b []byte) {
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == leadByte && i+1 < len(b) {
			i++
			b[i] = upperSecond(b[i])
			continue
		}
		b[i] = upperASCII(c)
	}
}

// UpperString returns s upper-cased in the manner of ToUpper.
func UpperString(s string) string {
	b := []byte(s)
	ToUpper(b)
	return string(b)
}

// IsASCIIClean returns true if no byte in b has the high bit set.
func IsASCIIClean(b []byte) bool {
	for len(b) >= 8 {
		if binary.LittleEndian.Uint64(b)&0x8080808080808080 != 0 {
			return false
		}
		b = b[8:]
	}
	for _, c := range b {
		if c&0x80 != 0 {
			return false
		}
	}
	return true
}

// ASCIIEquivalent returns the ASCII digraph for the German letter at the start
// of b, e.g. "UE" for Ü and "ue" for ü. It returns false for anything else,
// including plain ASCII.
func ASCIIEquivalent[T Bytes](b T) (string, bool) {
	if len(b) < 2 || b[0] != leadByte {
		return "", false
	}

	c := b[1]
	if c == sharpS {
		return "ss", true
	}
	for _, u := range umlauts {
		switch c {
		case u.upper:
			return u.digraph, true
		case u.lower:
			return strings.ToLower(u.digraph), true
		}
	}
	return "", false
}

// MatchesAt returns true if needle occurs in hay at offset at, ignoring case.
// The needle must already be upper case and at must not point into the
// middle of a multi-byte sequence.
func MatchesAt(hay, needle string, at int) bool {
	if at < 0 || at+len(needle) > len(hay) {
		return false
	}

	for o := 0; o < len(needle); o++ {
		n, h := needle[o], hay[at+o]
		switch {
		case n < 0x80:
			if h != n && upperASCII(h) != n {
				return false
			}
		case n == leadByte && h == leadByte && o+1 < len(needle):
			o++
			n, h = needle[o], hay[at+o]
			if h != n && upperSecond(h) != n {
				return false
			}
		default:
			if h != n {
				return false
			}
		}
	}

	return true
}

// FindFirst returns the first offset in [from, to) at which needle matches
// hay as per MatchesAt, or -1. Offsets holding a space or a '|' are never
// considered as match starts. FindFirst panics if to < from.
func FindFirst(hay, needle string, from, to int) int {
	if to < from {
		panic(fmt.Sprintf("utf8util: FindFirst range [%d, %d) is inverted", from, to))
	}
	if to > len(hay) {
		to = len(hay)
	}
	if from == to || to-from < len(needle) {
		return -1
	}

	for i := from; i <= to-len(needle); i++ {
		if hay[i] == ' ' || hay[i] == '|' {
			continue
		}
		if MatchesAt(hay, needle, i) {
			return i
		}
	}

	return -1
}

func upperASCII(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// upperSecond upper-cases the second byte of a two byte umlaut.
func upperSecond(c byte) byte {
	for _, u := range umlauts {
		if c == u.lower {
			return u.upper
		}
	}
	return c
}
