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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-ding/keyword"
)

const (
	exampleGerman  = "Wüsst {m} [zool.] | Regensburg [geol.]; Donnau {f} {pl} [geol.]"
	exampleEnglish = "Chop [sport]; Peanutbutter Sauce | Toe [Br.]"
)

func TestParse(t *testing.T) {
	t.Parallel()

	e := Parse(exampleGerman, exampleEnglish)

	want := &Entry{
		German: []Sense{
			{
				{Text("Wüsst"), Grammar("m"), Context("zool.")},
			},
			{
				{Text("Regensburg"), Context("geol.")},
				{Text("Donnau"), Grammar("f"), Grammar("pl"), Context("geol.")},
			},
		},
		English: []Sense{
			{
				{Text("Chop"), Context("sport")},
				{Text("Peanutbutter"), Text("Sauce")},
			},
			{
				{Text("Toe"), Context("Br.")},
			},
		},
		Distance: MaxDistance,
	}

	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("Parse (-want, +got):\n%s", diff)
	}

	if diff := cmp.Diff(exampleGerman+" :: "+exampleEnglish, e.String()); diff != "" {
		t.Errorf("String (-want, +got):\n%s", diff)
	}
}

func TestParseSide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []Sense
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace",
			input:    " \t ",
			expected: nil,
		},
		{
			name:  "annotation with spaces",
			input: "to chop sth. [Br. coll.] {vt}",
			expected: []Sense{
				{
					{Text("to"), Text("chop"), Text("sth."), Context("Br. coll."), Grammar("vt")},
				},
			},
		},
		{
			name:  "unclosed annotation",
			input: "Haus {n",
			expected: []Sense{
				{
					{Text("Haus"), Text("{n")},
				},
			},
		},
		{
			name:  "empty sense kept",
			input: "eins || drei;",
			expected: []Sense{
				{{Text("eins")}},
				nil,
				{{Text("drei")}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, ParseSide(test.input)); diff != "" {
				t.Errorf("ParseSide (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestEntry_Score(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected uint32
	}{
		{
			name:     "prefix",
			query:    "REGENS",
			expected: 4,
		},
		{
			name:     "whole word",
			query:    "REGENSBURG",
			expected: 0,
		},
		{
			name:     "absent",
			query:    "ISLANDS",
			expected: MaxDistance,
		},
		{
			name:     "two keywords in one phrase",
			query:    "PEANUT SAU",
			expected: 8,
		},
		{
			name:     "keywords in different phrases",
			query:    "PEANUT CHOP",
			expected: MaxDistance,
		},
		{
			name:     "annotations are not scored",
			query:    "ZOOL",
			expected: MaxDistance,
		},
		{
			name:     "lower case umlaut",
			query:    "WÜSST",
			expected: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			e := Parse(exampleGerman, exampleEnglish)
			got, err := e.Score(keyword.Parse(test.query))
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if want := test.expected; got != want {
				t.Errorf("Score, got: %d, want: %d", got, want)
			}
			if got != e.Distance {
				t.Errorf("Distance not stored, got: %d, want: %d", e.Distance, got)
			}
		})
	}
}

func TestEntry_Score_malformed(t *testing.T) {
	t.Parallel()

	e := Parse("Haus", "hou\xc3")
	if _, err := e.Score(keyword.Parse("HAUS")); err == nil {
		t.Errorf("expected an error for malformed text")
	}
}
