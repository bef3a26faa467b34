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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSet(t *testing.T) {
	set := NewHashSet("a", "b")

	require.Equal(t, 2, set.Length())
	require.True(t, set.Contains("a"))
	require.False(t, set.Contains("c"))

	set.Insert("c", "a")
	require.Equal(t, 3, set.Length())
	require.True(t, set.Contains("c"))

	require.ElementsMatch(t, []string{"a", "b", "c"}, set.ToList())
	require.Equal(t, []string{"a", "b", "c"}, set.SortedList())
}

func TestHashSetEmpty(t *testing.T) {
	set := NewHashSet()
	require.Equal(t, 0, set.Length())
	require.Empty(t, set.ToList())
}
