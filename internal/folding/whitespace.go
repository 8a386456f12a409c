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

// Package folding implements [transform.Transformer]s used to normalize
// queries and to render dictionary text.
package folding

import (
	"golang.org/x/text/transform"
)

// WhitespaceFolder will perform whitespace folding on the input. It removes
// ASCII whitespace from the beginning and end of the input and replaces all
// internal whitespace spans with a single ASCII space.
type WhitespaceFolder struct {
	// notStart is true after encountering the first non-whitespace byte.
	notStart bool

	// wsSpan is true if the transformer is currently handling a whitespace span.
	wsSpan bool
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, _ bool) (int, int, error) {
	var nSrc, nDst int
	for ; nSrc < len(src); nSrc++ {
		c := src[nSrc]
		if isSpace(c) {
			// Leading whitespace is dropped, internal spans are remembered.
			w.wsSpan = w.notStart
			continue
		}

		need := 1
		if w.wsSpan {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.wsSpan {
			dst[nDst] = ' '
			nDst++
			w.wsSpan = false
		}
		dst[nDst] = c
		nDst++
		w.notStart = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
