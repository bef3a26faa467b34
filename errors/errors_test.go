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

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryCode(t *testing.T) {
	cases := []struct {
		err  error
		code Code
	}{
		{Parse("bad yaml"), CodeParse},
		{UnknownType("no such type"), CodeUnknownType},
		{UnknownIndex("no such index"), CodeUnknownIndex},
		{UnknownMetric("no such metric"), CodeUnknownMetric},
		{VersionFormat("not a version"), CodeVersionFormat},
		{VersionRange("out of range"), CodeVersionRange},
		{Validation("invalid"), CodeValidation},
		{Internal("bug"), CodeInternal},
	}

	for _, c := range cases {
		t.Run(c.code.String(), func(t *testing.T) {
			require.Equal(t, c.code, CodeOf(c.err))
		})
	}
}

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("loading schema: %w", Parse("bad yaml"))
	require.Equal(t, CodeParse, CodeOf(err))
}

func TestCodeOfForeign(t *testing.T) {
	require.Equal(t, CodeUnknown, CodeOf(fmt.Errorf("plain")))
	require.Equal(t, CodeUnknown, CodeOf(nil))
}

func TestErrorMessage(t *testing.T) {
	err := Errorf(CodeParse, "line %d: %s", 3, "unexpected token")
	require.Equal(t, "line 3: unexpected token", err.Error())
}
