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

// Package tokenizer splits dictionary text into words. A word is a maximal
// run of bytes that are neither ASCII whitespace nor ASCII punctuation, so
// every byte of a multi-byte UTF-8 sequence belongs to a word.
package tokenizer

import "iter"

// Span is the location of a word within a string.
type Span struct {
	// Offset is the byte offset of the first byte of the word.
	Offset int

	// Len is the length of the word in bytes.
	Len int
}

// End returns the offset just past the end of the word.
func (sp Span) End() int {
	return sp.Offset + sp.Len
}

// In returns the word's text in s.
func (sp Span) In(s string) string {
	return s[sp.Offset:sp.End()]
}

// IsWordByte returns true if c can be part of a word.
func IsWordByte(c byte) bool {
	return !isSpace(c) && !isPunct(c)
}

// Words returns a sequence of the words in s starting at byte offset from.
func Words(s string, from int) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		i := from
		for i < len(s) {
			for i < len(s) && !IsWordByte(s[i]) {
				i++
			}
			start := i
			for i < len(s) && IsWordByte(s[i]) {
				i++
			}
			if i > start && !yield(Span{Offset: start, Len: i - start}) {
				return
			}
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isPunct matches the C locale's ispunct.
func isPunct(c byte) bool {
	switch {
	case '!' <= c && c <= '/',
		':' <= c && c <= '@',
		'[' <= c && c <= '`',
		'{' <= c && c <= '~':
		return true
	}
	return false
}
