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

func TestTypeOf(t *testing.T) {
	cases := []struct {
		tag      string
		expected FieldType
	}{
		{"bool", BoolType},
		{"int8", Int8Type},
		{"int16", Int16Type},
		{"int32", Int32Type},
		{"int64", Int64Type},
		{"float", FloatType},
		{"double", DoubleType},
		{"varchar", VarCharType},
		{"array", ArrayType},
		{"json", JSONType},
		{"binary_vector", BinaryVectorType},
		{"float_vector", FloatVectorType},
		{"float16_vector", Float16VectorType},
		{"bfloat16_vector", BFloat16VectorType},
		{"sparse_float_vector", SparseFloatVectorType},
		{"int8_vector", Int8VectorType},
	}

	for _, c := range cases {
		t.Run(c.tag, func(t *testing.T) {
			desc, err := TypeOf(c.tag)
			require.NoError(t, err)
			require.Equal(t, c.expected, desc.Type)
			require.Equal(t, c.tag, desc.Type.String())
		})
	}
}

func TestTypeOfCaseInsensitive(t *testing.T) {
	desc, err := TypeOf("VarChar")
	require.NoError(t, err)
	require.Equal(t, VarCharType, desc.Type)
}

func TestTypeOfUnknown(t *testing.T) {
	_, err := TypeOf("uuid")
	require.Error(t, err)
	require.Equal(t, errors.CodeUnknownType, errors.CodeOf(err))
	require.Contains(t, err.Error(), "Supported types")
}

func TestIndexCompatibility(t *testing.T) {
	cases := []struct {
		index   string
		allowed []FieldType
		denied  []FieldType
	}{
		{
			index:   "FLAT",
			allowed: []FieldType{FloatVectorType, Float16VectorType, BFloat16VectorType},
			denied:  []FieldType{BinaryVectorType, SparseFloatVectorType, Int8VectorType, VarCharType},
		},
		{
			index:   "IVF_FLAT",
			allowed: []FieldType{FloatVectorType},
			denied:  []FieldType{BinaryVectorType, Int64Type},
		},
		{
			index:   "HNSW",
			allowed: []FieldType{FloatVectorType, Int8VectorType},
			denied:  []FieldType{BinaryVectorType, SparseFloatVectorType},
		},
		{
			index:   "BIN_FLAT",
			allowed: []FieldType{BinaryVectorType},
			denied:  []FieldType{FloatVectorType},
		},
		{
			index:   "SPARSE_INVERTED_INDEX",
			allowed: []FieldType{SparseFloatVectorType},
			denied:  []FieldType{FloatVectorType, BinaryVectorType},
		},
		{
			index:   "INVERTED",
			allowed: []FieldType{VarCharType, Int64Type, FloatType, BoolType, ArrayType, JSONType},
			denied:  []FieldType{FloatVectorType, SparseFloatVectorType},
		},
		{
			index:   "BITMAP",
			allowed: []FieldType{VarCharType, BoolType, ArrayType},
			denied:  []FieldType{JSONType, FloatType},
		},
		{
			index:   "TRIE",
			allowed: []FieldType{VarCharType},
			denied:  []FieldType{Int64Type},
		},
		{
			index:   "STL_SORT",
			allowed: []FieldType{Int8Type, Int64Type},
			denied:  []FieldType{VarCharType, FloatType},
		},
		{
			index:   "GPU_CAGRA",
			allowed: []FieldType{FloatVectorType},
			denied:  []FieldType{BinaryVectorType, Int8VectorType},
		},
	}

	for _, c := range cases {
		t.Run(c.index, func(t *testing.T) {
			desc, err := IndexOf(c.index)
			require.NoError(t, err)

			for _, ft := range c.allowed {
				require.True(t, desc.Allows(ft), "%s should allow %s", c.index, ft)
			}
			for _, ft := range c.denied {
				require.False(t, desc.Allows(ft), "%s should not allow %s", c.index, ft)
			}
		})
	}
}

func TestIndexOfUnknown(t *testing.T) {
	_, err := IndexOf("LSH_FOREST")
	require.Error(t, err)
	require.Equal(t, errors.CodeUnknownIndex, errors.CodeOf(err))
}

func TestIndexTypesForIsSorted(t *testing.T) {
	names := IndexTypesFor(FloatVectorType)
	require.Contains(t, names, "FLAT")
	require.Contains(t, names, "HNSW")
	require.Contains(t, names, "AUTOINDEX")
	require.NotContains(t, names, "BIN_FLAT")
	require.IsIncreasing(t, names)
}

func TestMetricCompatibility(t *testing.T) {
	cases := []struct {
		metric  string
		allowed []FieldType
		denied  []FieldType
	}{
		{"L2", []FieldType{FloatVectorType, Float16VectorType, Int8VectorType}, []FieldType{BinaryVectorType, SparseFloatVectorType}},
		{"COSINE", []FieldType{FloatVectorType, BFloat16VectorType}, []FieldType{BinaryVectorType, SparseFloatVectorType}},
		{"IP", []FieldType{FloatVectorType, SparseFloatVectorType}, []FieldType{BinaryVectorType}},
		{"HAMMING", []FieldType{BinaryVectorType}, []FieldType{FloatVectorType}},
		{"JACCARD", []FieldType{BinaryVectorType}, []FieldType{SparseFloatVectorType}},
		{"TANIMOTO", []FieldType{BinaryVectorType}, []FieldType{FloatVectorType}},
		{"BM25", []FieldType{SparseFloatVectorType}, []FieldType{FloatVectorType, BinaryVectorType}},
	}

	for _, c := range cases {
		t.Run(c.metric, func(t *testing.T) {
			desc, err := MetricOf(c.metric)
			require.NoError(t, err)

			for _, ft := range c.allowed {
				require.True(t, desc.Allows(ft), "%s should allow %s", c.metric, ft)
			}
			for _, ft := range c.denied {
				require.False(t, desc.Allows(ft), "%s should not allow %s", c.metric, ft)
			}
		})
	}
}

func TestMetricOfUnknown(t *testing.T) {
	_, err := MetricOf("EUCLID")
	require.Error(t, err)
	require.Equal(t, errors.CodeUnknownMetric, errors.CodeOf(err))
}

func TestRecommendedIndex(t *testing.T) {
	require.Equal(t, "INVERTED", RecommendedIndex(VarCharType))
	require.Equal(t, "INVERTED", RecommendedIndex(Int64Type))
	require.Equal(t, "BITMAP", RecommendedIndex(BoolType))
	require.Equal(t, "BITMAP", RecommendedIndex(ArrayType))
	require.Equal(t, "HNSW", RecommendedIndex(Int8VectorType))
	require.Empty(t, RecommendedIndex(FloatVectorType))
}

func TestVersionGatedRegistrations(t *testing.T) {
	for _, tag := range []string{"float16_vector", "bfloat16_vector", "int8_vector"} {
		desc, err := TypeOf(tag)
		require.NoError(t, err)
		require.Equal(t, vectorExtensionsVersion, desc.MinClientVersion, tag)
	}

	for _, name := range []string{"GPU_CAGRA", "GPU_BRUTE_FORCE"} {
		desc, err := IndexOf(name)
		require.NoError(t, err)
		require.Equal(t, vectorExtensionsVersion, desc.MinClientVersion, name)
		require.True(t, desc.GPU)
	}
}
