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

import "strings"

// Parse parses the German and English sides of a dictionary line.
func Parse(german, english string) *Entry {
	return &Entry{
		German:   ParseSide(german),
		English:  ParseSide(english),
		Distance: MaxDistance,
	}
}

// ParseSide parses one side of a dictionary line into senses. Empty input
// yields no senses. Empty senses are kept so that both sides of an entry stay
// parallel.
func ParseSide(s string) []Sense {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var senses []Sense
	for _, sense := range strings.Split(s, "|") {
		var phrases Sense
		for _, phrase := range strings.Split(sense, ";") {
			if p := parsePhrase(phrase); len(p) > 0 {
				phrases = append(phrases, p)
			}
		}
		senses = append(senses, phrases)
	}
	return senses
}

// parsePhrase splits a phrase into atoms. Annotations run up to their closing
// bracket and may contain spaces. An annotation missing its closing bracket
// is read as text.
func parsePhrase(s string) Phrase {
	var p Phrase
	for i := 0; i < len(s); {
		c := s[i]
		if isSpace(c) {
			i++
			continue
		}

		if c == '{' || c == '[' {
			closing := byte('}')
			if c == '[' {
				closing = ']'
			}
			if j := strings.IndexByte(s[i+1:], closing); j >= 0 {
				body := s[i+1 : i+1+j]
				if c == '{' {
					p = append(p, Grammar(body))
				} else {
					p = append(p, Context(body))
				}
				i += j + 2
				continue
			}
		}

		j := i + 1
		for j < len(s) && !isSpace(s[j]) && s[j] != '{' && s[j] != '[' {
			j++
		}
		p = append(p, Text(s[i:j]))
		i = j
	}
	return p
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
