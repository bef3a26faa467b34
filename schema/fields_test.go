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

func TestNewFieldBuilder(t *testing.T) {
	builder, err := NewFieldBuilder(map[string]any{
		"name":       "id",
		"type":       "int64",
		"is_primary": true,
		"auto_id":    true,
	})
	require.NoError(t, err)
	require.Equal(t, "id", builder.FieldName)
	require.Equal(t, "int64", builder.Type)
	require.True(t, builder.primary())
	require.NotNil(t, builder.AutoID)
	require.True(t, *builder.AutoID)
	require.Nil(t, builder.Dim)
	require.Nil(t, builder.MaxLength)
}

func TestNewFieldBuilderWrongKind(t *testing.T) {
	_, err := NewFieldBuilder(map[string]any{
		"name": "embedding",
		"type": "float_vector",
		"dim":  "lots",
	})
	require.Error(t, err)
	require.Equal(t, errors.CodeParse, errors.CodeOf(err))
}

func TestFieldBuildVector(t *testing.T) {
	builder, err := NewFieldBuilder(map[string]any{
		"name": "embedding",
		"type": "float_vector",
		"dim":  768,
	})
	require.NoError(t, err)

	field, err := builder.Build()
	require.NoError(t, err)
	require.Equal(t, FloatVectorType, field.DataType)
	require.Equal(t, int64(768), field.GetDim())
	require.False(t, field.PrimaryKey)
}

func TestFieldBuildVarChar(t *testing.T) {
	builder, err := NewFieldBuilder(map[string]any{
		"name":       "title",
		"type":       "varchar",
		"max_length": 512,
		"nullable":   true,
	})
	require.NoError(t, err)

	field, err := builder.Build()
	require.NoError(t, err)
	require.Equal(t, VarCharType, field.DataType)
	require.NotNil(t, field.MaxLength)
	require.Equal(t, int64(512), *field.MaxLength)
	require.True(t, field.Nullable)
}

func TestFieldBuildArray(t *testing.T) {
	builder, err := NewFieldBuilder(map[string]any{
		"name":         "tags",
		"type":         "array",
		"element_type": "varchar",
		"max_capacity": 64,
		"max_length":   128,
	})
	require.NoError(t, err)

	field, err := builder.Build()
	require.NoError(t, err)
	require.Equal(t, ArrayType, field.DataType)
	require.Equal(t, VarCharType, field.ElementType)
	require.Equal(t, int64(64), *field.MaxCapacity)
	require.Equal(t, int64(128), *field.MaxLength)
}

func TestFieldBuildAnalyzerDefaults(t *testing.T) {
	builder, err := NewFieldBuilder(map[string]any{
		"name":            "text",
		"type":            "varchar",
		"max_length":      2048,
		"enable_analyzer": true,
		"enable_match":    true,
	})
	require.NoError(t, err)

	field, err := builder.Build()
	require.NoError(t, err)
	require.True(t, field.EnableAnalyzer)
	require.True(t, field.EnableMatch)
	require.Equal(t, map[string]any{"type": "english"}, field.AnalyzerParams)
}

func TestFieldBuildAnalyzerParamsPreserved(t *testing.T) {
	builder, err := NewFieldBuilder(map[string]any{
		"name":            "text",
		"type":            "varchar",
		"max_length":      2048,
		"enable_analyzer": true,
		"analyzer_params": map[string]any{"type": "standard"},
	})
	require.NoError(t, err)

	field, err := builder.Build()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"type": "standard"}, field.AnalyzerParams)
}

func TestFieldBuildMissingRequired(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
	}{
		{"vector without dim", map[string]any{"name": "v", "type": "float_vector"}},
		{"varchar without max_length", map[string]any{"name": "s", "type": "varchar"}},
		{"array without element", map[string]any{"name": "a", "type": "array", "max_capacity": 8}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			builder, err := NewFieldBuilder(c.raw)
			require.NoError(t, err)

			_, err = builder.Build()
			require.Error(t, err)
			require.Equal(t, errors.CodeInternal, errors.CodeOf(err))
		})
	}
}

func TestGetField(t *testing.T) {
	fields := []*Field{
		{Name: "id", DataType: Int64Type},
		{Name: "embedding", DataType: FloatVectorType},
	}

	require.Equal(t, fields[1], GetField(fields, "embedding"))
	require.Nil(t, GetField(fields, "missing"))
}

func TestFieldTypePredicates(t *testing.T) {
	require.True(t, FloatVectorType.IsVector())
	require.True(t, SparseFloatVectorType.IsVector())
	require.True(t, Int8VectorType.IsVector())
	require.False(t, Int8Type.IsVector())
	require.False(t, JSONType.IsVector())

	require.True(t, Int8VectorType.IsFloatFamilyVector())
	require.False(t, BinaryVectorType.IsFloatFamilyVector())
	require.False(t, SparseFloatVectorType.IsFloatFamilyVector())

	require.True(t, Int64Type.IsPrimaryEligible())
	require.True(t, VarCharType.IsPrimaryEligible())
	require.False(t, Int32Type.IsPrimaryEligible())

	require.True(t, VarCharType.IsElementEligible())
	require.False(t, ArrayType.IsElementEligible())
	require.False(t, FloatVectorType.IsElementEligible())
}
