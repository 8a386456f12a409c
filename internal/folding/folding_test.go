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
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/transform"
)

func TestFolders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		t        func() transform.Transformer
		input    string
		expected string
	}{
		{
			name:     "whitespace leading and trailing",
			t:        func() transform.Transformer { return &WhitespaceFolder{} },
			input:    " \t Haus  \n",
			expected: "Haus",
		},
		{
			name:     "whitespace internal",
			t:        func() transform.Transformer { return &WhitespaceFolder{} },
			input:    "peanut \t\r\n  sau",
			expected: "peanut sau",
		},
		{
			name:     "whitespace only",
			t:        func() transform.Transformer { return &WhitespaceFolder{} },
			input:    "   ",
			expected: "",
		},
		{
			name:     "upper",
			t:        func() transform.Transformer { return UpperFolder{} },
			input:    "König über Käse",
			expected: "KÖNIG ÜBER KÄSE",
		},
		{
			name:     "ascii",
			t:        func() transform.Transformer { return ASCIIFolder{} },
			input:    "Übung, Straße und Käse",
			expected: "UEbung, Strasse und Kaese",
		},
		{
			name:     "ascii leaves other text",
			t:        func() transform.Transformer { return ASCIIFolder{} },
			input:    "café € 5",
			expected: "café € 5",
		},
		{
			name: "chain",
			t: func() transform.Transformer {
				return transform.Chain(&WhitespaceFolder{}, UpperFolder{})
			},
			input:    "  ein   könig ",
			expected: "EIN KÖNIG",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(test.t(), test.input)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("transform.String (-want, +got):\n%s", diff)
			}
		})
	}
}
