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

// Package entry implements parsing and scoring of dictionary entries.
//
// A dictionary line holds a German and an English side separated by "::".
// Each side is a list of numbered senses separated by '|'. Each sense is a
// list of synonymous phrases separated by ';' and each phrase is a list of
// atoms: plain text, {grammar} annotations and [context] annotations.
//
//	Haus {n}; Gebäude {n} | Familie {f} :: house; building | family
package entry

import (
	"math"
	"strings"
)

// MaxDistance is the distance of an entry that does not match the keywords.
const MaxDistance uint32 = math.MaxUint32

// Atom is a single element of a phrase. An Atom is one of Text, Grammar or
// Context.
type Atom interface {
	// String returns the atom as it appears in the dictionary.
	String() string

	atom()
}

// Text is searchable phrase text.
type Text string

// String implements [fmt.Stringer.String].
func (t Text) String() string { return string(t) }

func (Text) atom() {}

// Grammar is a grammatical annotation such as a word's gender, e.g. {f}.
type Grammar string

// String implements [fmt.Stringer.String].
func (g Grammar) String() string { return "{" + string(g) + "}" }

func (Grammar) atom() {}

// Context is a usage annotation such as a subject area, e.g. [geol.].
type Context string

// String implements [fmt.Stringer.String].
func (c Context) String() string { return "[" + string(c) + "]" }

func (Context) atom() {}

// Phrase is an indivisible sequence of atoms.
type Phrase []Atom

// String returns the atoms separated by spaces.
func (p Phrase) String() string {
	s := make([]string, len(p))
	for i, a := range p {
		s[i] = a.String()
	}
	return strings.Join(s, " ")
}

// Sense is one numbered meaning made up of synonymous phrases.
type Sense []Phrase

// String returns the phrases separated by "; ".
func (s Sense) String() string {
	p := make([]string, len(s))
	for i, phrase := range s {
		p[i] = phrase.String()
	}
	return strings.Join(p, "; ")
}

// Entry is a parsed dictionary line.
type Entry struct {
	// German holds the senses of the German side.
	German []Sense

	// English holds the senses of the English side. Senses are parallel to
	// German senses.
	English []Sense

	// Distance is the entry's distance from the keywords it was scored
	// against. Smaller is better.
	Distance uint32
}

// String returns the entry in dictionary line format.
func (e *Entry) String() string {
	return sidesString(e.German) + " :: " + sidesString(e.English)
}

func sidesString(senses []Sense) string {
	s := make([]string, len(senses))
	for i, sense := range senses {
		s[i] = sense.String()
	}
	return strings.Join(s, " | ")
}
