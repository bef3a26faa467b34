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
	"bytes"
	"regexp"

	jsoniter "github.com/json-iterator/go"

	"github.com/yamlvus/yamlvus/errors"
	"github.com/yamlvus/yamlvus/lib/container"
	"github.com/yamlvus/yamlvus/util"
)

// FieldType is the target client's data type enumeration. The numeric values
// are the client wire values, so a built field can be handed over as-is.
type FieldType int32

const (
	UnknownType FieldType = 0

	BoolType   FieldType = 1
	Int8Type   FieldType = 2
	Int16Type  FieldType = 3
	Int32Type  FieldType = 4
	Int64Type  FieldType = 5
	FloatType  FieldType = 10
	DoubleType FieldType = 11

	VarCharType FieldType = 21
	ArrayType   FieldType = 22
	JSONType    FieldType = 23

	BinaryVectorType      FieldType = 100
	FloatVectorType       FieldType = 101
	Float16VectorType     FieldType = 102
	BFloat16VectorType    FieldType = 103
	SparseFloatVectorType FieldType = 104
	Int8VectorType        FieldType = 105
)

var fieldTypeNames = map[FieldType]string{
	UnknownType:           "unknown",
	BoolType:              "bool",
	Int8Type:              "int8",
	Int16Type:             "int16",
	Int32Type:             "int32",
	Int64Type:             "int64",
	FloatType:             "float",
	DoubleType:            "double",
	VarCharType:           "varchar",
	ArrayType:             "array",
	JSONType:              "json",
	BinaryVectorType:      "binary_vector",
	FloatVectorType:       "float_vector",
	Float16VectorType:     "float16_vector",
	BFloat16VectorType:    "bfloat16_vector",
	SparseFloatVectorType: "sparse_float_vector",
	Int8VectorType:        "int8_vector",
}

// String returns the declarative tag of the type.
func (t FieldType) String() string {
	if s, ok := fieldTypeNames[t]; ok {
		return s
	}
	return fieldTypeNames[UnknownType]
}

// IsVector reports whether values of the type are similarity-searchable.
func (t FieldType) IsVector() bool {
	return t >= BinaryVectorType && t <= Int8VectorType
}

// IsFloatFamilyVector covers the dense vector kinds sharing the float metric
// set: full precision, reduced precision, and low precision integers.
func (t FieldType) IsFloatFamilyVector() bool {
	switch t {
	case FloatVectorType, Float16VectorType, BFloat16VectorType, Int8VectorType:
		return true
	default:
		return false
	}
}

// IsPrimaryEligible reports whether a field of the type can be the primary
// key. Only discrete scalar kinds qualify.
func (t FieldType) IsPrimaryEligible() bool {
	switch t {
	case Int64Type, VarCharType:
		return true
	default:
		return false
	}
}

// IsElementEligible reports whether the type can be an array element type.
func (t FieldType) IsElementEligible() bool {
	switch t {
	case BoolType, Int8Type, Int16Type, Int32Type, Int64Type, FloatType, DoubleType, VarCharType:
		return true
	default:
		return false
	}
}

var (
	// Field names may not start with an underscore, that prefix is reserved
	// for system fields.
	validFieldName = regexp.MustCompile(`^[a-zA-Z0-9-][a-zA-Z0-9_-]*$`)
)

// SupportedFieldAttributes are the keys a field definition may carry. Unknown
// keys are surfaced by the validator instead of being silently dropped.
var SupportedFieldAttributes = container.NewHashSet(
	"name",
	"type",
	"description",
	"is_primary",
	"auto_id",
	"nullable",
	"max_length",
	"dim",
	"element_type",
	"max_capacity",
	"enable_analyzer",
	"enable_match",
	"analyzer_params",
	"multi_analyzer_params",
)

// FieldBuilder is the loosely typed form of one field definition, decoded
// straight out of the configuration tree. Optional attributes are pointers so
// that absence can be told apart from the zero value.
type FieldBuilder struct {
	FieldName           string         `json:"name"`
	Type                string         `json:"type"`
	Description         string         `json:"description,omitempty"`
	IsPrimary           *bool          `json:"is_primary,omitempty"`
	AutoID              *bool          `json:"auto_id,omitempty"`
	Nullable            *bool          `json:"nullable,omitempty"`
	MaxLength           *int64         `json:"max_length,omitempty"`
	Dim                 *int64         `json:"dim,omitempty"`
	ElementType         *string        `json:"element_type,omitempty"`
	MaxCapacity         *int64         `json:"max_capacity,omitempty"`
	EnableAnalyzer      *bool          `json:"enable_analyzer,omitempty"`
	EnableMatch         *bool          `json:"enable_match,omitempty"`
	AnalyzerParams      map[string]any `json:"analyzer_params,omitempty"`
	MultiAnalyzerParams map[string]any `json:"multi_analyzer_params,omitempty"`
}

// NewFieldBuilder decodes one raw field mapping. A decode failure means an
// attribute has the wrong kind, for example a string where an integer is
// expected.
func NewFieldBuilder(raw map[string]any) (*FieldBuilder, error) {
	b, err := util.MapToJSON(raw)
	if err != nil {
		return nil, errors.Internal("field definition is not serializable: %v", err)
	}

	var builder FieldBuilder

	dec := jsoniter.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err = dec.Decode(&builder); err != nil {
		return nil, errors.Parse("invalid field definition: %v", err)
	}

	return &builder, nil
}

func (f *FieldBuilder) primary() bool {
	return f.IsPrimary != nil && *f.IsPrimary
}

func (f *FieldBuilder) analyzerEnabled() bool {
	return f.EnableAnalyzer != nil && *f.EnableAnalyzer
}

func (f *FieldBuilder) matchEnabled() bool {
	return f.EnableMatch != nil && *f.EnableMatch
}

// Build converts the validated definition into a typed field. The builder
// assumes the definition passed validation; a missing required parameter at
// this point is an internal invariant violation, not user input.
func (f *FieldBuilder) Build() (*Field, error) {
	desc, err := TypeOf(f.Type)
	if err != nil {
		return nil, err
	}

	field := &Field{
		Name:        f.FieldName,
		DataType:    desc.Type,
		Description: f.Description,
	}

	if f.primary() {
		field.PrimaryKey = true
		field.AutoID = f.AutoID != nil && *f.AutoID
	}

	if f.Nullable != nil {
		field.Nullable = *f.Nullable
	}

	if desc.RequiresMaxLength {
		if f.MaxLength == nil {
			return nil, errors.Internal("field '%s' of type '%s' reached build without max_length", f.FieldName, f.Type)
		}
		field.MaxLength = f.MaxLength
	}

	if desc.RequiresDim {
		if f.Dim == nil {
			return nil, errors.Internal("vector field '%s' reached build without dim", f.FieldName)
		}
		field.Dim = f.Dim
	}

	if desc.RequiresElement {
		if f.ElementType == nil || f.MaxCapacity == nil {
			return nil, errors.Internal("array field '%s' reached build without element_type or max_capacity", f.FieldName)
		}

		elem, err := TypeOf(*f.ElementType)
		if err != nil {
			return nil, err
		}

		field.ElementType = elem.Type
		field.MaxCapacity = f.MaxCapacity

		// varchar elements carry their own length bound
		if elem.Type == VarCharType {
			field.MaxLength = f.MaxLength
		}
	}

	if f.analyzerEnabled() {
		field.EnableAnalyzer = true
		if len(f.AnalyzerParams) > 0 {
			field.AnalyzerParams = f.AnalyzerParams
		} else {
			field.AnalyzerParams = map[string]any{"type": "english"}
		}
	}

	if f.matchEnabled() {
		field.EnableMatch = true
	}

	if len(f.MultiAnalyzerParams) > 0 {
		field.MultiAnalyzerParams = f.MultiAnalyzerParams
	}

	return field, nil
}

// Field is one fully built, typed column of a collection schema.
type Field struct {
	Name                string         `json:"name"`
	DataType            FieldType      `json:"data_type"`
	Description         string         `json:"description,omitempty"`
	PrimaryKey          bool           `json:"is_primary,omitempty"`
	AutoID              bool           `json:"auto_id,omitempty"`
	Nullable            bool           `json:"nullable,omitempty"`
	MaxLength           *int64         `json:"max_length,omitempty"`
	Dim                 *int64         `json:"dim,omitempty"`
	ElementType         FieldType      `json:"element_type,omitempty"`
	MaxCapacity         *int64         `json:"max_capacity,omitempty"`
	EnableAnalyzer      bool           `json:"enable_analyzer,omitempty"`
	EnableMatch         bool           `json:"enable_match,omitempty"`
	AnalyzerParams      map[string]any `json:"analyzer_params,omitempty"`
	MultiAnalyzerParams map[string]any `json:"multi_analyzer_params,omitempty"`
}

func (f *Field) Type() FieldType {
	return f.DataType
}

func (f *Field) IsPrimaryKey() bool {
	return f.PrimaryKey
}

func (f *Field) GetDim() int64 {
	if f.Dim != nil {
		return *f.Dim
	}
	return 0
}

// GetField looks a field up by name, nil when absent.
func GetField(fields []*Field, name string) *Field {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}

	return nil
}
