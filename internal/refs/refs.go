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

// Package refs implements sorted sets of dictionary refs.
package refs

import (
	"cmp"
	"slices"
	"sort"
)

// Set is a sorted set of refs.
type Set struct {
	refs []int64
}

// NewSet creates a set from the given refs. Duplicates are dropped.
func NewSet(refs []int64) *Set {
	sorted := slices.Clone(refs)
	slices.Sort(sorted)

	return &Set{
		refs: slices.Compact(sorted),
	}
}

// Len returns the number of refs in the set.
func (s *Set) Len() int {
	return len(s.refs)
}

// Refs returns the refs in ascending order.
func (s *Set) Refs() []int64 {
	return s.refs
}

// Contains performs a binary search over the set.
func (s *Set) Contains(ref int64) bool {
	_, found := sort.Find(len(s.refs), func(i int) int {
		return cmp.Compare(ref, s.refs[i])
	})
	return found
}

// Intersect removes all refs from s that are not in other.
func (s *Set) Intersect(other *Set) {
	s.refs = slices.DeleteFunc(s.refs, func(ref int64) bool {
		return !other.Contains(ref)
	})
}
