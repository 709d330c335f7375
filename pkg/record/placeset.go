// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package record

import (
	"sort"
	"strings"
)

// 📦 PlaceSet is a deduplicated set of place identifiers collected
// while scanning timeline items. Built fresh per run, never persisted.
type PlaceSet map[string]struct{}

// 🏭 NewPlaceSet creates an empty set
func NewPlaceSet() PlaceSet {
	return make(PlaceSet)
}

// 📝 Add records an identifier; empty strings are ignored
func (s PlaceSet) Add(id string) {
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

// 🔍 Contains reports whether an identifier is in the set
func (s PlaceSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// 🔢 Len returns the number of distinct identifiers
func (s PlaceSet) Len() int {
	return len(s)
}

// 📋 IDs returns the identifiers in sorted order
func (s PlaceSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// 🗂️ Buckets returns the sorted set of distinct bucket keys for the
// identifiers. Places are bucketed by the uppercased first character
// of their identifier.
func (s PlaceSet) Buckets() []string {
	seen := make(map[string]struct{})
	for id := range s {
		seen[BucketKey(id)] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// 🔑 BucketKey derives the place bucket for an identifier
func BucketKey(id string) string {
	if id == "" {
		return ""
	}
	return strings.ToUpper(id[:1])
}
