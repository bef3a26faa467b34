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
)

func TestValidationResultAccumulates(t *testing.T) {
	res := NewValidationResult()
	require.False(t, res.HasErrors())
	require.Zero(t, res.Len())

	res.Warn("fields.v", "no index")
	res.Error("fields.s", "missing max_length")
	res.Info("indexes.s", "consider INVERTED")

	require.True(t, res.HasErrors())
	require.Equal(t, 3, res.Len())
	require.Len(t, res.Errors(), 1)
	require.Len(t, res.Warnings(), 1)
	require.Len(t, res.Infos(), 1)
}

func TestValidationResultOrderPreserved(t *testing.T) {
	res := NewValidationResult()
	res.Error("a", "first")
	res.Warn("b", "second")
	res.Error("c", "third")

	require.Equal(t, []string{
		"ERROR: a: first",
		"WARNING: b: second",
		"ERROR: c: third",
	}, res.Strings())
}

func TestValidationResultMerge(t *testing.T) {
	a := NewValidationResult()
	a.Error("x", "one")

	b := NewValidationResult()
	b.Warn("y", "two")

	a.Merge(b)
	require.Equal(t, 2, a.Len())
	require.True(t, a.HasErrors())
}

func TestValidationMessageString(t *testing.T) {
	m := ValidationMessage{Severity: SeverityWarning, Text: "document level"}
	require.Equal(t, "WARNING: document level", m.String())

	m = ValidationMessage{Severity: SeverityError, Path: "fields.v", Text: "bad"}
	require.Equal(t, "ERROR: fields.v: bad", m.String())
}
