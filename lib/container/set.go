// Copyright 2025-2026 Yamlvus Contributors
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

package container

import "sort"

// HashSet is a string set used by the type registries and validators.
type HashSet struct {
	members map[string]struct{}
}

func NewHashSet(s ...string) HashSet {
	set := HashSet{
		members: make(map[string]struct{}, len(s)*2),
	}
	set.Insert(s...)
	return set
}

func (set *HashSet) Length() int {
	return len(set.members)
}

func (set *HashSet) Insert(s ...string) {
	for _, ss := range s {
		set.members[ss] = struct{}{}
	}
}

func (set *HashSet) Contains(s string) bool {
	_, ok := set.members[s]
	return ok
}

func (set *HashSet) ToList() []string {
	list := make([]string, 0, len(set.members))
	for k := range set.members {
		list = append(list, k)
	}
	return list
}

// SortedList returns the members in lexical order. Diagnostics listing legal
// values use this so messages are deterministic.
func (set *HashSet) SortedList() []string {
	list := set.ToList()
	sort.Strings(list)
	return list
}
