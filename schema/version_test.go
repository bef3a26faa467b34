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

package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlvus/yamlvus/errors"
)

func TestClientRequirementAbsent(t *testing.T) {
	c, err := ClientRequirement(map[string]any{"name": "products"})
	require.NoError(t, err)
	require.Nil(t, c)

	require.NoError(t, c.Check("2.6.2"))
}

func TestClientRequirementBounds(t *testing.T) {
	root := map[string]any{
		"pymilvus": map[string]any{
			"min_version": "2.4.0",
			"max_version": "2.6.0",
		},
	}

	c, err := ClientRequirement(root)
	require.NoError(t, err)
	require.Equal(t, "2.4.0", c.Min)
	require.Equal(t, "2.6.0", c.Max)

	require.NoError(t, c.Check("2.4.0"))
	require.NoError(t, c.Check("2.5.3"))
	require.NoError(t, c.Check("2.6.0"))

	err = c.Check("2.3.9")
	require.Error(t, err)
	require.Equal(t, errors.CodeVersionRange, errors.CodeOf(err))

	err = c.Check("2.6.1")
	require.Error(t, err)
	require.Equal(t, errors.CodeVersionRange, errors.CodeOf(err))
}

func TestClientRequirementAlias(t *testing.T) {
	c, err := ClientRequirement(map[string]any{
		"client": map[string]any{"min_version": "2.6.0"},
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "2.6.0", c.Min)
}

func TestClientRequirementExact(t *testing.T) {
	for _, key := range []string{"version", "require", "exact_version"} {
		t.Run(key, func(t *testing.T) {
			c, err := ClientRequirement(map[string]any{
				"pymilvus": map[string]any{key: "2.5.1"},
			})
			require.NoError(t, err)
			require.Equal(t, "2.5.1", c.Exact)

			require.NoError(t, c.Check("2.5.1"))
			require.Error(t, c.Check("2.5.2"))
		})
	}
}

func TestClientRequirementRejects(t *testing.T) {
	cases := []struct {
		name string
		req  map[string]any
	}{
		{"not a mapping", map[string]any{"pymilvus": "2.6.0"}},
		{"unknown key", map[string]any{"pymilvus": map[string]any{"minimum": "2.6.0"}}},
		{"non-string version", map[string]any{"pymilvus": map[string]any{"min_version": 2.6}}},
		{"malformed version", map[string]any{"pymilvus": map[string]any{"min_version": "latest"}}},
		{"exact plus bounds", map[string]any{"pymilvus": map[string]any{"version": "2.6.0", "min_version": "2.4.0"}}},
		{"inverted bounds", map[string]any{"pymilvus": map[string]any{"min_version": "2.6.0", "max_version": "2.4.0"}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ClientRequirement(c.req)
			require.Error(t, err)
			require.Equal(t, errors.CodeVersionFormat, errors.CodeOf(err))
		})
	}
}

func TestCheckMalformedRuntime(t *testing.T) {
	c := &VersionConstraint{Min: "2.4.0"}
	err := c.Check("not-a-version")
	require.Error(t, err)
	require.Equal(t, errors.CodeVersionFormat, errors.CodeOf(err))
}

func TestVersionAtLeast(t *testing.T) {
	require.True(t, versionAtLeast("2.6.0", "2.6.0"))
	require.True(t, versionAtLeast("2.6.2", "2.6.0"))
	require.True(t, versionAtLeast("2.6.2", ""))
	require.False(t, versionAtLeast("2.5.9", "2.6.0"))
	require.False(t, versionAtLeast("garbage", "2.6.0"))
}
