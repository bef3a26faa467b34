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
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yamlvus/yamlvus/lib/container"
	"github.com/yamlvus/yamlvus/parser"
)

// smallVectorDim is the dimensionality below which a dense vector is more
// likely a typo than a deliberate choice.
const smallVectorDim = 8

// Validator applies every schema rule to a parsed document and accumulates
// the findings. It never stops at the first problem; a single run reports
// everything wrong with the document.
type Validator struct {
	version string
	strict  bool

	root      map[string]any
	fields    []map[string]any
	indexes   []map[string]any
	functions []map[string]any
	settings  map[string]any

	res *ValidationResult

	// resolved during field validation, consumed by the later passes
	fieldOrder []string
	fieldTypes map[string]FieldType
	analyzerOn container.HashSet

	autoindex   bool
	bm25Outputs container.HashSet

	// resolved index type per indexed field, for relationship checks
	indexTypeFor map[string]string
}

// NewValidator prepares a validation run against the given runtime client
// version. Documents whose sections have the wrong shape fail here with a
// parse error; rule checking never starts on a malformed tree.
func NewValidator(doc *parser.Document, clientVersion string) (*Validator, error) {
	if _, err := doc.Name(); err != nil {
		return nil, err
	}
	if _, err := doc.Alias(); err != nil {
		return nil, err
	}

	fields, err := doc.Fields()
	if err != nil {
		return nil, err
	}
	indexes, err := doc.Indexes()
	if err != nil {
		return nil, err
	}
	functions, err := doc.Functions()
	if err != nil {
		return nil, err
	}
	settings, err := doc.Settings()
	if err != nil {
		return nil, err
	}

	return &Validator{
		version:      clientVersion,
		root:         doc.Root(),
		fields:       fields,
		indexes:      indexes,
		functions:    functions,
		settings:     settings,
		res:          NewValidationResult(),
		fieldTypes:   map[string]FieldType{},
		analyzerOn:   container.NewHashSet(),
		autoindex:    autoindexSetting(doc.Root(), settings),
		bm25Outputs:  bm25OutputFields(functions),
		indexTypeFor: map[string]string{},
	}, nil
}

// Strict escalates unknown attribute findings from warnings to errors.
func (v *Validator) Strict(strict bool) *Validator {
	v.strict = strict
	return v
}

// unknownAttrs reports keys outside the supported set, as errors in strict
// mode.
func (v *Validator) unknownAttrs(path, what string, raw map[string]any, supported container.HashSet) {
	unknown := unknownKeys(raw, supported)
	if len(unknown) == 0 {
		return
	}

	if v.strict {
		v.res.Error(path, "unknown %s: %s", what, strings.Join(unknown, ", "))
	} else {
		v.res.Warn(path, "unknown %s: %s", what, strings.Join(unknown, ", "))
	}
}

// Validate runs every rule group in document order and returns the combined
// result. The result is deterministic for a given document.
func (v *Validator) Validate() *ValidationResult {
	v.validateFields()
	v.validateIndexes()
	v.validateFunctions()
	v.validateSettings()

	return v.res
}

func entryPath(section string, i int, name string) string {
	if name != "" {
		return section + "." + name
	}
	return fmt.Sprintf("%s[%d]", section, i)
}

func unknownKeys(raw map[string]any, supported container.HashSet) []string {
	var unknown []string
	for key := range raw {
		if !supported.Contains(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func asInt64(val any) (int64, bool) {
	switch n := val.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat64(val any) (float64, bool) {
	switch n := val.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func (v *Validator) validateFields() {
	seen := container.NewHashSet()
	var primaries []string

	for i, raw := range v.fields {
		name, _ := raw["name"].(string)
		path := entryPath("fields", i, name)

		v.unknownAttrs(path, "field attributes", raw, SupportedFieldAttributes)

		builder, err := NewFieldBuilder(raw)
		if err != nil {
			v.res.Error(path, "%v", err)
			continue
		}

		switch {
		case name == "":
			v.res.Error(path, "field name is required")
		case strings.HasPrefix(name, "_"):
			v.res.Error(path, "field name '%s' is invalid. Names starting with an underscore are reserved", name)
		case !validFieldName.MatchString(name):
			v.res.Error(path, "field name '%s' is invalid. Names may contain only letters, digits, underscores, and hyphens", name)
		case seen.Contains(name):
			v.res.Error(path, "duplicate field name '%s'", name)
		default:
			seen.Insert(name)
			v.fieldOrder = append(v.fieldOrder, name)
		}

		if builder.Type == "" {
			v.res.Error(path, "field type is required")
			continue
		}

		desc, err := TypeOf(builder.Type)
		if err != nil {
			v.res.Error(path, "%v", err)
			continue
		}

		if name != "" {
			v.fieldTypes[name] = desc.Type
		}

		if desc.MinClientVersion != "" && !versionAtLeast(v.version, desc.MinClientVersion) {
			v.res.Error(path, "field type '%s' requires client >= %s, but current version is %s",
				desc.Tag, desc.MinClientVersion, v.version)
		}

		v.validateFieldParams(path, desc, builder)

		if builder.primary() {
			primaries = append(primaries, name)
			if !desc.Type.IsPrimaryEligible() {
				v.res.Error(path, "primary field must be of type int64 or varchar, got '%s'", desc.Tag)
			}
			if builder.Nullable != nil && *builder.Nullable {
				v.res.Error(path, "primary field cannot be nullable")
			}
			if builder.AutoID != nil && *builder.AutoID && desc.Type != Int64Type {
				v.res.Error(path, "auto_id requires an int64 primary field, got '%s'", desc.Tag)
			}
		} else if builder.AutoID != nil && *builder.AutoID {
			v.res.Error(path, "auto_id is only valid on the primary field")
		}

		if builder.matchEnabled() && !builder.analyzerEnabled() {
			v.res.Error(path, "enable_match requires enable_analyzer")
		}
		if builder.analyzerEnabled() {
			if desc.Type != VarCharType {
				v.res.Error(path, "enable_analyzer is only supported on varchar fields, got '%s'", desc.Tag)
			} else if name != "" {
				v.analyzerOn.Insert(name)
			}
		}
	}

	switch len(primaries) {
	case 1:
	case 0:
		v.res.Error("fields", "schema must declare exactly one primary field")
	default:
		v.res.Error("fields", "schema declares multiple primary fields: %s", strings.Join(primaries, ", "))
	}
}

// validateFieldParams checks the per-type parameter contract: required
// parameters present, declared ones in range.
func (v *Validator) validateFieldParams(path string, desc *TypeDescriptor, builder *FieldBuilder) {
	if desc.RequiresMaxLength {
		switch {
		case builder.MaxLength == nil:
			v.res.Error(path, "field type '%s' requires max_length", desc.Tag)
		case *builder.MaxLength <= 0:
			v.res.Error(path, "max_length must be a positive integer, got %d", *builder.MaxLength)
		case *builder.MaxLength > desc.MaxLengthLimit:
			v.res.Error(path, "max_length %d exceeds the maximum %d", *builder.MaxLength, desc.MaxLengthLimit)
		}
	}

	if desc.RequiresDim {
		switch {
		case builder.Dim == nil:
			v.res.Error(path, "field type '%s' requires dim", desc.Tag)
		case *builder.Dim <= 0:
			v.res.Error(path, "dim must be a positive integer, got %d", *builder.Dim)
		case *builder.Dim > desc.MaxDim:
			v.res.Error(path, "dim %d exceeds the maximum %d for type '%s'", *builder.Dim, desc.MaxDim, desc.Tag)
		case *builder.Dim < smallVectorDim:
			v.res.Warn(path, "dimension %d is unusually small for a vector field", *builder.Dim)
		}
	} else if builder.Dim != nil {
		if desc.Type == SparseFloatVectorType {
			v.res.Error(path, "field type '%s' does not take a dim parameter", desc.Tag)
		} else {
			v.res.Warn(path, "attribute 'dim' has no effect on field type '%s'", desc.Tag)
		}
	}

	if desc.RequiresElement {
		if builder.ElementType == nil {
			v.res.Error(path, "field type '%s' requires element_type", desc.Tag)
		} else if elem, err := TypeOf(*builder.ElementType); err != nil {
			v.res.Error(path, "%v", err)
		} else if !elem.Type.IsElementEligible() {
			v.res.Error(path, "'%s' is not a supported array element type", elem.Tag)
		} else if elem.Type == VarCharType && builder.MaxLength == nil {
			v.res.Error(path, "varchar array elements require max_length")
		}

		switch {
		case builder.MaxCapacity == nil:
			v.res.Error(path, "field type '%s' requires max_capacity", desc.Tag)
		case *builder.MaxCapacity <= 0:
			v.res.Error(path, "max_capacity must be a positive integer, got %d", *builder.MaxCapacity)
		case *builder.MaxCapacity > desc.MaxCapacityLimit:
			v.res.Error(path, "max_capacity %d exceeds the maximum %d", *builder.MaxCapacity, desc.MaxCapacityLimit)
		}
	}
}

func (v *Validator) validateIndexes() {
	indexed := container.NewHashSet()

	for i, raw := range v.indexes {
		fieldName, _ := raw["field"].(string)
		path := entryPath("indexes", i, fieldName)

		v.unknownAttrs(path, "index attributes", raw, SupportedIndexAttributes)

		if fieldName == "" {
			v.res.Error(path, "index entry requires a 'field' reference")
			continue
		}

		if indexed.Contains(fieldName) {
			v.res.Error(path, "duplicate index on field '%s'", fieldName)
		} else {
			indexed.Insert(fieldName)
		}

		fieldType, known := v.fieldTypes[fieldName]
		if !known {
			v.res.Error(path, "index references unknown field '%s'", fieldName)
			continue
		}

		desc := v.resolveIndexDescriptor(path, raw, fieldName, fieldType)
		if desc == nil {
			continue
		}
		v.indexTypeFor[fieldName] = desc.Name

		if desc.MinClientVersion != "" && !versionAtLeast(v.version, desc.MinClientVersion) {
			v.res.Error(path, "index type '%s' requires client >= %s, but current version is %s",
				desc.Name, desc.MinClientVersion, v.version)
		}

		if !desc.Allows(fieldType) {
			v.res.Error(path, "index type '%s' is not supported on field type '%s'. Supported index types: %s",
				desc.Name, fieldType, strings.Join(IndexTypesFor(fieldType), ", "))
		}

		v.validateIndexMetric(path, raw, desc, fieldName, fieldType)
		v.validateIndexParams(path, raw, desc)

		if !fieldType.IsVector() && desc.Allows(fieldType) {
			if rec := RecommendedIndex(fieldType); rec != "" && rec != desc.Name {
				v.res.Info(path, "field type '%s' is usually indexed with %s", fieldType, rec)
			}
		}
	}

	for _, name := range v.fieldOrder {
		if v.fieldTypes[name].IsVector() && !indexed.Contains(name) && !v.bm25Outputs.Contains(name) {
			v.res.Warn("fields."+name, "vector field '%s' has no index; searches will fall back to brute force", name)
		}
	}
}

// resolveIndexDescriptor determines the effective index type of one entry,
// applying the defaults that stand in for a missing declaration: sparse
// inverted for BM25 outputs and sparse vectors, AUTOINDEX when the
// collection enables it. Nil when no type can be determined; the error has
// already been recorded.
func (v *Validator) resolveIndexDescriptor(path string, raw map[string]any, fieldName string, fieldType FieldType) *IndexDescriptor {
	declared, ok := raw["type"]
	if !ok {
		switch {
		case v.bm25Outputs.Contains(fieldName), fieldType == SparseFloatVectorType:
			return indexRegistry["SPARSE_INVERTED_INDEX"]
		case v.autoindex && fieldType.IsFloatFamilyVector():
			return indexRegistry["AUTOINDEX"]
		default:
			v.res.Error(path, "index on field '%s' requires a 'type'", fieldName)
			return nil
		}
	}

	name, ok := declared.(string)
	if !ok {
		v.res.Error(path, "index type must be a string, got %T", declared)
		return nil
	}

	desc, err := IndexOf(name)
	if err != nil {
		v.res.Error(path, "%v", err)
		return nil
	}

	return desc
}

func (v *Validator) validateIndexMetric(path string, raw map[string]any, desc *IndexDescriptor, fieldName string, fieldType FieldType) {
	declared, ok := raw["metric"]
	if !ok {
		if fieldType.IsVector() && !v.bm25Outputs.Contains(fieldName) && fieldType != SparseFloatVectorType {
			v.res.Warn(path, "no metric declared for vector index on '%s'; the target default will apply", fieldName)
		}
		return
	}

	name, ok := declared.(string)
	if !ok {
		v.res.Error(path, "metric must be a string, got %T", declared)
		return
	}

	metric, err := MetricOf(name)
	if err != nil {
		v.res.Error(path, "%v", err)
		return
	}

	if !fieldType.IsVector() {
		v.res.Error(path, "metric '%s' is not applicable to an index on scalar field '%s'", metric.Name, fieldName)
		return
	}

	if desc.GPU && metric.Name == "COSINE" {
		v.res.Error(path, "GPU index '%s' does not support the COSINE metric", desc.Name)
		return
	}

	if !metric.Allows(fieldType) {
		v.res.Error(path, "metric '%s' is not supported on field type '%s'. Supported metrics: %s",
			metric.Name, fieldType, strings.Join(MetricsFor(fieldType), ", "))
	}
}

func (v *Validator) validateIndexParams(path string, raw map[string]any, desc *IndexDescriptor) {
	var params map[string]any

	if declared, ok := raw["params"]; ok {
		params, ok = declared.(map[string]any)
		if !ok {
			v.res.Error(path, "index params must be a mapping, got %T", declared)
			return
		}
	}

	for _, rule := range desc.RequiredParams {
		if _, ok := params[rule.Name]; !ok {
			v.res.Error(path, "index type '%s' requires param '%s'", desc.Name, rule.Name)
		}
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rule := desc.paramRule(name)
		if rule == nil {
			v.res.Warn(path, "unknown param '%s' for index type '%s'", name, desc.Name)
			continue
		}

		n, ok := asInt64(params[name])
		if !ok || n <= 0 {
			v.res.Error(path, "index param '%s' must be a positive integer", name)
			continue
		}
		if rule.Max > 0 && n > rule.Max {
			v.res.Error(path, "index param '%s' must be in range (0, %d], got %d", name, rule.Max, n)
		}
	}
}

func (v *Validator) validateFunctions() {
	seen := container.NewHashSet()

	for i, raw := range v.functions {
		name, _ := raw["name"].(string)
		path := entryPath("functions", i, name)

		v.unknownAttrs(path, "function attributes", raw, SupportedFunctionAttributes)

		if name == "" {
			v.res.Error(path, "function name is required")
		} else if seen.Contains(name) {
			v.res.Error(path, "duplicate function name '%s'", name)
		} else {
			seen.Insert(name)
		}

		declared, ok := functionDeclaredType(raw)
		if !ok {
			v.res.Error(path, "function requires a 'type'")
			continue
		}

		kind, err := FunctionTypeOf(declared)
		if err != nil {
			v.res.Error(path, "%v", err)
			continue
		}

		inputs := v.validateFunctionInputs(path, raw)
		outputs := v.validateFunctionOutputs(path, raw)
		params, _ := raw["params"].(map[string]any)

		switch kind {
		case BM25Function:
			v.validateBM25(path, inputs, outputs, params)
		case TextEmbedding:
			v.validateTextEmbedding(path, outputs, params)
		}
	}
}

// validateFunctionInputs checks the input references and returns the names
// that resolved to an eligible source field.
func (v *Validator) validateFunctionInputs(path string, raw map[string]any) []string {
	names, found, wellFormed := functionInputs(raw)
	if !found {
		v.res.Error(path, "function requires input fields")
		return nil
	}
	if !wellFormed {
		v.res.Error(path, "function input fields must be a field name or a list of field names")
		return nil
	}
	if len(names) == 0 {
		v.res.Error(path, "function requires at least one input field")
		return nil
	}

	var resolved []string
	for _, name := range names {
		fieldType, ok := v.fieldTypes[name]
		if !ok {
			v.res.Error(path, "function input references unknown field '%s'", name)
			continue
		}
		if fieldType != VarCharType && fieldType != JSONType {
			v.res.Error(path, "function input field '%s' must be varchar or json, got '%s'", name, fieldType)
			continue
		}
		resolved = append(resolved, name)
	}

	return resolved
}

func (v *Validator) validateFunctionOutputs(path string, raw map[string]any) []string {
	names, found, wellFormed := functionOutputs(raw)
	if !found {
		v.res.Error(path, "function requires output fields")
		return nil
	}
	if !wellFormed {
		v.res.Error(path, "function output fields must be a field name or a list of field names")
		return nil
	}
	if len(names) == 0 {
		v.res.Error(path, "function requires at least one output field")
		return nil
	}

	var resolved []string
	for _, name := range names {
		if _, ok := v.fieldTypes[name]; !ok {
			v.res.Error(path, "function output references unknown field '%s'", name)
			continue
		}
		resolved = append(resolved, name)
	}

	return resolved
}

func (v *Validator) validateBM25(path string, inputs, outputs []string, params map[string]any) {
	for _, name := range inputs {
		if v.fieldTypes[name] == VarCharType && !v.analyzerOn.Contains(name) {
			v.res.Error(path, "BM25 input field '%s' must set enable_analyzer", name)
		}
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if name != "bm25_k1" && name != "bm25_b" {
			v.res.Warn(path, "unknown BM25 param '%s'", name)
			continue
		}
		if f, ok := asFloat64(params[name]); !ok || f <= 0 {
			v.res.Error(path, "BM25 param '%s' must be a positive number", name)
		}
	}

	for _, name := range outputs {
		if v.fieldTypes[name] != SparseFloatVectorType {
			v.res.Error(path, "BM25 output field '%s' must be of type sparse_float_vector, got '%s'", name, v.fieldTypes[name])
			continue
		}

		indexType, declared := v.indexTypeFor[name]
		switch {
		case declared && indexType != "SPARSE_INVERTED_INDEX":
			v.res.Error(path, "BM25 output '%s' must use a SPARSE_INVERTED_INDEX index, got '%s'", name, indexType)
		case !declared:
			v.res.Warn(path, "no index declared for BM25 output '%s'; defaulting to SPARSE_INVERTED_INDEX with the BM25 metric", name)
		}
	}
}

func (v *Validator) validateTextEmbedding(path string, outputs []string, params map[string]any) {
	if model, ok := params["model"].(string); !ok || model == "" {
		v.res.Error(path, "TEXT_EMBEDDING function requires params.model")
	}

	for _, name := range outputs {
		if !v.fieldTypes[name].IsFloatFamilyVector() {
			v.res.Error(path, "TEXT_EMBEDDING output field '%s' must be a dense vector type, got '%s'", name, v.fieldTypes[name])
		}
	}
}

func (v *Validator) validateSettings() {
	const path = "settings"

	v.unknownAttrs(path, "settings", v.settings, SupportedSettingAttributes)

	declarations := autoindexDeclarations(v.root, v.settings)
	if len(declarations) > 1 {
		keys := make([]string, 0, len(declarations))
		for _, d := range declarations {
			keys = append(keys, d.Key)
		}
		v.res.Error(path, "conflicting autoindex declarations: %s", strings.Join(keys, ", "))
	}
	for _, d := range declarations {
		if _, isBool := d.Value.(bool); !isBool {
			v.res.Error(path, "'%s' must be a boolean, got %T", d.Key, d.Value)
		}
	}

	if val, ok := v.settings["consistency_level"]; ok {
		if s, isStr := val.(string); !isStr {
			v.res.Error(path, "consistency_level must be a string, got %T", val)
		} else if _, err := ConsistencyLevelOf(s); err != nil {
			v.res.Error(path, "%v", err)
		}
	}

	if val, ok := v.settings["ttl_seconds"]; ok {
		if n, isInt := asInt64(val); !isInt {
			v.res.Error(path, "ttl_seconds must be an integer, got %T", val)
		} else if n < 0 {
			v.res.Error(path, "ttl_seconds cannot be negative, got %d", n)
		}
	}

	if val, ok := v.settings["enable_dynamic_field"]; ok {
		if _, isBool := val.(bool); !isBool {
			v.res.Error(path, "enable_dynamic_field must be a boolean, got %T", val)
		}
	}

	if val, ok := v.settings["num_shards"]; ok {
		if n, isInt := asInt64(val); !isInt || n <= 0 {
			v.res.Error(path, "num_shards must be a positive integer")
		}
	}

	if val, ok := v.settings["description"]; ok {
		if _, isStr := val.(string); !isStr {
			v.res.Error(path, "settings description must be a string, got %T", val)
		}
	}
}
