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

package entry

import (
	"fmt"

	"github.com/ianlewis/go-ding/internal/tokenizer"
	"github.com/ianlewis/go-ding/internal/utf8util"
	"github.com/ianlewis/go-ding/keyword"
)

// Score computes the entry's distance from the keywords, stores it in
// Distance and returns it.
//
// A phrase's distance is the number of codepoints of its text that are not
// covered by a keyword matching at the start of a word. A phrase that lacks
// any of the keywords has the distance MaxDistance. The distance of a side is
// that of its closest phrase and the entry's distance is that of its closest
// side. Only Text atoms are considered.
func (e *Entry) Score(kw *keyword.Set) (uint32, error) {
	used := make([]bool, kw.Len())

	german, err := sensesDistance(e.German, kw, used)
	if err != nil {
		return MaxDistance, err
	}
	english, err := sensesDistance(e.English, kw, used)
	if err != nil {
		return MaxDistance, err
	}

	e.Distance = min(german, english)
	return e.Distance, nil
}

func sensesDistance(senses []Sense, kw *keyword.Set, used []bool) (uint32, error) {
	d := MaxDistance
	for _, sense := range senses {
		for _, phrase := range sense {
			pd, err := phraseDistance(phrase, kw, used)
			if err != nil {
				return MaxDistance, err
			}
			d = min(d, pd)
		}
	}
	return d, nil
}

func phraseDistance(p Phrase, kw *keyword.Set, used []bool) (uint32, error) {
	clear(used)

	var d uint32
	for _, a := range p {
		text, ok := a.(Text)
		if !ok {
			continue
		}
		s := string(text)
		for sp := range tokenizer.Words(s, 0) {
			i := kw.MatchAt(s, sp.Offset)
			start := sp.Offset
			if i >= 0 && len(kw.Keyword(i)) <= sp.Len {
				used[i] = true
				start += len(kw.Keyword(i))
			}
			n, err := utf8util.CountSequences(s[start:sp.End()])
			if err != nil {
				return MaxDistance, fmt.Errorf("scoring %q: %w", s, err)
			}
			d += uint32(n) //nolint:gosec // words are far shorter than MaxUint32.
		}
	}

	for _, u := range used {
		if !u {
			return MaxDistance, nil
		}
	}
	return d, nil
}
