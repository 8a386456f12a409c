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

package folding

import (
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-ding/internal/utf8util"
)

// UpperFolder upper-cases ASCII letters and German umlauts.
type UpperFolder struct {
	transform.NopResetter
}

// Transform implements [transform.Transformer.Transform].
func (UpperFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	n := len(src)
	if n > 0 && src[n-1] == 0xc3 && !atEOF {
		// Keep the umlaut's lead byte with its second byte.
		n--
	}
	if n > len(dst) {
		n = len(dst)
		if n > 0 && src[n-1] == 0xc3 {
			n--
		}
		copy(dst, src[:n])
		utf8util.ToUpper(dst[:n])
		return n, n, transform.ErrShortDst
	}

	copy(dst, src[:n])
	utf8util.ToUpper(dst[:n])
	if n < len(src) {
		return n, n, transform.ErrShortSrc
	}
	return n, n, nil
}

// ASCIIFolder replaces German umlauts and ß with their ASCII digraphs, e.g.
// "Übung" becomes "UEbung". It is used to render text on terminals that
// cannot display UTF-8.
type ASCIIFolder struct {
	transform.NopResetter
}

// Transform implements [transform.Transformer.Transform].
func (ASCIIFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c := src[nSrc]
		if c == 0xc3 {
			if nSrc+1 >= len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if eq, ok := utf8util.ASCIIEquivalent(src[nSrc:]); ok {
				if nDst+len(eq) > len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				nDst += copy(dst[nDst:], eq)
				nSrc += 2
				continue
			}
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
	}

	return nDst, nSrc, nil
}
