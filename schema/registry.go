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
	"sort"
	"strings"

	"github.com/yamlvus/yamlvus/errors"
)

// The registries below are the closed lookup tables of the type system:
// declarative tag -> target enumeration plus the legality data the validator
// consults. They are populated at init and never mutated afterwards, so
// concurrent loads need no coordination.

// TypeDescriptor is the parameter contract of one field type.
type TypeDescriptor struct {
	Tag  string
	Type FieldType

	// RequiresDim is set for dense vector kinds; MaxDim bounds the declared
	// dimensionality. Sparse vectors carry no dim at all.
	RequiresDim bool
	MaxDim      int64

	// RequiresMaxLength is set for the variable-length text type.
	RequiresMaxLength bool
	MaxLengthLimit    int64

	// RequiresElement is set for the array type, which needs an element type
	// and a maximum capacity.
	RequiresElement  bool
	MaxCapacityLimit int64

	// MinClientVersion gates types the target client grew later, empty means
	// always available.
	MinClientVersion string
}

const (
	maxVectorDim     = 32768
	maxBinaryDim     = 32768 * 8
	maxVarCharLength = 65535
	maxArrayCapacity = 4096

	// client release that introduced the reduced precision vector kinds and
	// the newer GPU indexes
	vectorExtensionsVersion = "2.6.0"
)

var typeRegistry = map[string]*TypeDescriptor{
	"bool":   {Tag: "bool", Type: BoolType},
	"int8":   {Tag: "int8", Type: Int8Type},
	"int16":  {Tag: "int16", Type: Int16Type},
	"int32":  {Tag: "int32", Type: Int32Type},
	"int64":  {Tag: "int64", Type: Int64Type},
	"float":  {Tag: "float", Type: FloatType},
	"double": {Tag: "double", Type: DoubleType},
	"varchar": {
		Tag: "varchar", Type: VarCharType,
		RequiresMaxLength: true, MaxLengthLimit: maxVarCharLength,
	},
	"json": {Tag: "json", Type: JSONType},
	"array": {
		Tag: "array", Type: ArrayType,
		RequiresElement: true, MaxCapacityLimit: maxArrayCapacity,
	},
	"float_vector": {
		Tag: "float_vector", Type: FloatVectorType,
		RequiresDim: true, MaxDim: maxVectorDim,
	},
	"binary_vector": {
		Tag: "binary_vector", Type: BinaryVectorType,
		RequiresDim: true, MaxDim: maxBinaryDim,
	},
	"float16_vector": {
		Tag: "float16_vector", Type: Float16VectorType,
		RequiresDim: true, MaxDim: maxVectorDim,
		MinClientVersion: vectorExtensionsVersion,
	},
	"bfloat16_vector": {
		Tag: "bfloat16_vector", Type: BFloat16VectorType,
		RequiresDim: true, MaxDim: maxVectorDim,
		MinClientVersion: vectorExtensionsVersion,
	},
	"int8_vector": {
		Tag: "int8_vector", Type: Int8VectorType,
		RequiresDim: true, MaxDim: maxVectorDim,
		MinClientVersion: vectorExtensionsVersion,
	},
	"sparse_float_vector": {Tag: "sparse_float_vector", Type: SparseFloatVectorType},
}

// TypeOf resolves a declarative type tag, case-insensitively.
func TypeOf(tag string) (*TypeDescriptor, error) {
	if desc, ok := typeRegistry[strings.ToLower(tag)]; ok {
		return desc, nil
	}

	return nil, errors.UnknownType("unsupported field type '%s'. Supported types: %s", tag, strings.Join(TypeTags(), ", "))
}

// TypeTags lists the registered type tags in lexical order.
func TypeTags() []string {
	tags := make([]string, 0, len(typeRegistry))
	for tag := range typeRegistry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ParamRule bounds one numeric index parameter. Zero Max means unbounded.
type ParamRule struct {
	Name string
	Max  int64
}

// IndexDescriptor is one registered index kind.
type IndexDescriptor struct {
	Name string

	// FieldTypes is the allowed-field-types row of the compatibility matrix.
	FieldTypes []FieldType

	// RequiredParams must be present in the index params mapping.
	RequiredParams []ParamRule

	// OptionalParams are known tunables, checked for range when present.
	OptionalParams []ParamRule

	// GPU marks the GPU index family, which rejects the COSINE metric.
	GPU bool

	MinClientVersion string
}

func (d *IndexDescriptor) Allows(t FieldType) bool {
	for _, ft := range d.FieldTypes {
		if ft == t {
			return true
		}
	}
	return false
}

func (d *IndexDescriptor) paramRule(name string) *ParamRule {
	for i := range d.RequiredParams {
		if d.RequiredParams[i].Name == name {
			return &d.RequiredParams[i]
		}
	}
	for i := range d.OptionalParams {
		if d.OptionalParams[i].Name == name {
			return &d.OptionalParams[i]
		}
	}
	return nil
}

var (
	denseFloatVectors = []FieldType{FloatVectorType, Float16VectorType, BFloat16VectorType}
	searchableScalars = []FieldType{
		BoolType, Int8Type, Int16Type, Int32Type, Int64Type,
		FloatType, DoubleType, VarCharType, ArrayType, JSONType,
	}
	sortableScalars = []FieldType{Int8Type, Int16Type, Int32Type, Int64Type}

	ivfParams  = []ParamRule{{Name: "nlist", Max: 65536}}
	hnswParams = []ParamRule{{Name: "M", Max: 100}, {Name: "efConstruction"}}
)

var indexRegistry = map[string]*IndexDescriptor{
	"FLAT":       {Name: "FLAT", FieldTypes: denseFloatVectors},
	"IVF_FLAT":   {Name: "IVF_FLAT", FieldTypes: denseFloatVectors, RequiredParams: ivfParams},
	"IVF_SQ8":    {Name: "IVF_SQ8", FieldTypes: denseFloatVectors, RequiredParams: ivfParams},
	"IVF_PQ":     {Name: "IVF_PQ", FieldTypes: denseFloatVectors, RequiredParams: ivfParams, OptionalParams: []ParamRule{{Name: "m"}}},
	"IVF_RABITQ": {Name: "IVF_RABITQ", FieldTypes: denseFloatVectors},
	"HNSW": {
		Name:           "HNSW",
		FieldTypes:     append([]FieldType{Int8VectorType}, denseFloatVectors...),
		RequiredParams: hnswParams,
	},
	"DISKANN":   {Name: "DISKANN", FieldTypes: denseFloatVectors},
	"AUTOINDEX": {Name: "AUTOINDEX", FieldTypes: denseFloatVectors},

	"GPU_IVF_FLAT": {Name: "GPU_IVF_FLAT", FieldTypes: denseFloatVectors, RequiredParams: ivfParams, GPU: true},
	"GPU_IVF_PQ":   {Name: "GPU_IVF_PQ", FieldTypes: denseFloatVectors, RequiredParams: ivfParams, GPU: true},
	"GPU_CAGRA": {
		Name: "GPU_CAGRA", FieldTypes: denseFloatVectors,
		GPU: true, MinClientVersion: vectorExtensionsVersion,
	},
	"GPU_BRUTE_FORCE": {
		Name: "GPU_BRUTE_FORCE", FieldTypes: denseFloatVectors,
		GPU: true, MinClientVersion: vectorExtensionsVersion,
	},

	"BIN_FLAT":     {Name: "BIN_FLAT", FieldTypes: []FieldType{BinaryVectorType}},
	"BIN_IVF_FLAT": {Name: "BIN_IVF_FLAT", FieldTypes: []FieldType{BinaryVectorType}},
	"MINHASH_LSH":  {Name: "MINHASH_LSH", FieldTypes: []FieldType{BinaryVectorType}},

	"SPARSE_INVERTED_INDEX": {Name: "SPARSE_INVERTED_INDEX", FieldTypes: []FieldType{SparseFloatVectorType}},

	"INVERTED": {Name: "INVERTED", FieldTypes: searchableScalars},
	"BITMAP":   {Name: "BITMAP", FieldTypes: []FieldType{VarCharType, BoolType, ArrayType}},
	"TRIE":     {Name: "TRIE", FieldTypes: []FieldType{VarCharType}},
	"STL_SORT": {Name: "STL_SORT", FieldTypes: sortableScalars},
}

// IndexOf resolves an index type name, case-insensitively.
func IndexOf(name string) (*IndexDescriptor, error) {
	if desc, ok := indexRegistry[strings.ToUpper(name)]; ok {
		return desc, nil
	}

	return nil, errors.UnknownIndex("unsupported index type '%s'", name)
}

// IndexTypesFor lists the legal index names for a field type, in lexical
// order, for diagnostics.
func IndexTypesFor(t FieldType) []string {
	var names []string
	for name, desc := range indexRegistry {
		if desc.Allows(t) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// RecommendedIndex is the index suggested for a scalar field type when the
// declared choice is legal but unusual. Empty when there is no preference.
func RecommendedIndex(t FieldType) string {
	switch t {
	case BoolType, ArrayType:
		return "BITMAP"
	case Int8VectorType:
		return "HNSW"
	case Int8Type, Int16Type, Int32Type, Int64Type,
		FloatType, DoubleType, VarCharType, JSONType:
		return "INVERTED"
	default:
		return ""
	}
}

// MetricDescriptor is one registered distance or scoring function.
type MetricDescriptor struct {
	Name string

	// FieldTypes are the vector kinds the metric can compare.
	FieldTypes []FieldType
}

func (d *MetricDescriptor) Allows(t FieldType) bool {
	for _, ft := range d.FieldTypes {
		if ft == t {
			return true
		}
	}
	return false
}

var (
	floatMetricTargets = []FieldType{FloatVectorType, Float16VectorType, BFloat16VectorType, Int8VectorType}
	binaryMetricTargets = []FieldType{BinaryVectorType}
)

var metricRegistry = map[string]*MetricDescriptor{
	"L2":     {Name: "L2", FieldTypes: floatMetricTargets},
	"IP":     {Name: "IP", FieldTypes: append([]FieldType{SparseFloatVectorType}, floatMetricTargets...)},
	"COSINE": {Name: "COSINE", FieldTypes: floatMetricTargets},

	"HAMMING":  {Name: "HAMMING", FieldTypes: binaryMetricTargets},
	"JACCARD":  {Name: "JACCARD", FieldTypes: binaryMetricTargets},
	"TANIMOTO": {Name: "TANIMOTO", FieldTypes: binaryMetricTargets},

	"BM25": {Name: "BM25", FieldTypes: []FieldType{SparseFloatVectorType}},
}

// MetricOf resolves a metric name, case-insensitively.
func MetricOf(name string) (*MetricDescriptor, error) {
	if desc, ok := metricRegistry[strings.ToUpper(name)]; ok {
		return desc, nil
	}

	return nil, errors.UnknownMetric("unsupported metric '%s'", name)
}

// MetricsFor lists the legal metric names for a vector kind, in lexical
// order, for diagnostics.
func MetricsFor(t FieldType) []string {
	var names []string
	for name, desc := range metricRegistry {
		if desc.Allows(t) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
