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

package refs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSet_Intersect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sets     [][]int64
		expected []int64
	}{
		{
			name:     "single",
			sets:     [][]int64{{789, 123, 456, 123}},
			expected: []int64{123, 456, 789},
		},
		{
			name:     "overlap",
			sets:     [][]int64{{123, 456, 789}, {456, 999, 123}},
			expected: []int64{123, 456},
		},
		{
			name:     "three sets",
			sets:     [][]int64{{1, 2, 3, 4}, {4, 3, 2}, {3, 4, 5}},
			expected: []int64{3, 4},
		},
		{
			name:     "disjoint",
			sets:     [][]int64{{1, 2}, {3, 4}},
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s := NewSet(test.sets[0])
			for _, refs := range test.sets[1:] {
				s.Intersect(NewSet(refs))
			}

			if diff := cmp.Diff(test.expected, s.Refs(), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("Intersect (-want, +got):\n%s", diff)
			}
			if got, want := s.Len(), len(test.expected); got != want {
				t.Errorf("Len, got: %d, want: %d", got, want)
			}
		})
	}
}

func TestSet_Contains(t *testing.T) {
	t.Parallel()

	s := NewSet([]int64{42, 7, 19})
	for _, ref := range []int64{7, 19, 42} {
		if !s.Contains(ref) {
			t.Errorf("Contains(%d) = false", ref)
		}
	}
	for _, ref := range []int64{0, 8, 43} {
		if s.Contains(ref) {
			t.Errorf("Contains(%d) = true", ref)
		}
	}
}
