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

// Package keyword builds the normalized search terms of a query.
package keyword

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-ding/internal/folding"
	"github.com/ianlewis/go-ding/internal/tokenizer"
	"github.com/ianlewis/go-ding/internal/utf8util"
)

// adjustments are the ASCII spellings of German letters, in the order they
// are substituted by Adjust.
var adjustments = []struct {
	ascii, letter string
}{
	{"EE", "Ë"},
	{"UE", "Ü"},
	{"OE", "Ö"},
	{"AE", "Ä"},
	{"IE", "Ï"},
	{"SS", "ß"},
}

// Set is an ordered set of upper case keywords. Longer keywords sort first so
// that the most specific keyword is tried first when matching.
type Set struct {
	keywords []string

	// trie holds every keyword for prefix checks.
	trie *patricia.Trie
}

// New returns an empty keyword set.
func New() *Set {
	return &Set{
		trie: patricia.NewTrie(),
	}
}

// Parse returns the keyword set for a raw user query. The query is
// whitespace folded and upper-cased before being added.
func Parse(query string) *Set {
	s := New()
	upper, _, err := transform.String(transform.Chain(&folding.WhitespaceFolder{}, folding.UpperFolder{}), query)
	if err != nil {
		upper = utf8util.UpperString(query)
	}
	s.Add(upper)
	return s
}

// Add adds the words of the upper case text to the set. Common words and words
// that are a prefix of a keyword already in the set are skipped.
func (s *Set) Add(upper string) {
	for sp := range tokenizer.Words(upper, 0) {
		w := sp.In(upper)
		if IsCommon(w) || s.trie.MatchSubtree(patricia.Prefix(w)) {
			continue
		}
		s.keywords = append(s.keywords, w)
		s.trie.Insert(patricia.Prefix(w), struct{}{})
	}
	s.sort()
}

// Keywords returns the keywords in order.
func (s *Set) Keywords() []string {
	return slices.Clone(s.keywords)
}

// Keyword returns the i'th keyword.
func (s *Set) Keyword(i int) string {
	return s.keywords[i]
}

// Len returns the number of keywords.
func (s *Set) Len() int {
	return len(s.keywords)
}

// Longest returns the length in bytes of the longest keyword.
func (s *Set) Longest() int {
	var longest int
	for _, kw := range s.keywords {
		longest = max(longest, len(kw))
	}
	return longest
}

// AllPresent returns true if every keyword matches the start of a word in
// text.
func (s *Set) AllPresent(text string) bool {
	for _, kw := range s.keywords {
		if !startsWord(text, kw) {
			return false
		}
	}
	return true
}

// MatchAt returns the index of the first keyword that matches text at offset
// at, or -1 if none does.
func (s *Set) MatchAt(text string, at int) int {
	for i, kw := range s.keywords {
		if utf8util.MatchesAt(text, kw, at) {
			return i
		}
	}
	return -1
}

// FindFirst returns the earliest offset in [from, to) at which any keyword
// matches text along with the index of that keyword. The offset is -1 if no
// keyword matches.
func (s *Set) FindFirst(text string, from, to int) (int, int) {
	offset, index := -1, -1
	for i, kw := range s.keywords {
		o := utf8util.FindFirst(text, kw, from, to)
		if o >= 0 && (offset < 0 || o < offset) {
			offset, index = o, i
		}
	}
	return offset, index
}

// Adjust replaces the ASCII spellings EE, UE, OE, AE, IE and SS in every
// keyword with the German letters they stand for, e.g. KOENIG becomes KÖNIG.
// The byte length of each keyword is unchanged. Adjust returns true if any
// keyword changed.
func (s *Set) Adjust() bool {
	var changed bool
	for i, kw := range s.keywords {
		for _, a := range adjustments {
			if strings.Contains(kw, a.ascii) {
				kw = strings.ReplaceAll(kw, a.ascii, a.letter)
				changed = true
			}
		}
		s.keywords[i] = kw
	}

	if changed {
		s.sort()
		s.keywords = slices.Compact(s.keywords)
		s.trie = patricia.NewTrie()
		for _, kw := range s.keywords {
			s.trie.Insert(patricia.Prefix(kw), struct{}{})
		}
	}
	return changed
}

// String returns the keywords separated by spaces.
func (s *Set) String() string {
	return strings.Join(s.keywords, " ")
}

func (s *Set) sort() {
	slices.SortFunc(s.keywords, func(a, b string) int {
		if c := cmp.Compare(codepoints(b), codepoints(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}

func startsWord(text, kw string) bool {
	for sp := range tokenizer.Words(text, 0) {
		if sp.Len >= len(kw) && utf8util.MatchesAt(text, kw, sp.Offset) {
			return true
		}
	}
	return false
}
