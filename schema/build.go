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
	"github.com/hashicorp/go-multierror"

	"github.com/yamlvus/yamlvus/config"
	"github.com/yamlvus/yamlvus/errors"
	"github.com/yamlvus/yamlvus/lib/container"
	"github.com/yamlvus/yamlvus/parser"
)

// BuildState tracks a document through the pipeline. Transitions only move
// forward; a rejected document stays rejected.
type BuildState int

const (
	StateLoaded BuildState = iota
	StateVersionChecked
	StateValidated
	StateBuilt
	StateRejected
)

func (s BuildState) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateVersionChecked:
		return "version_checked"
	case StateValidated:
		return "validated"
	case StateBuilt:
		return "built"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Built is the translated output: a complete collection schema plus the
// index requests to issue after creating it.
type Built struct {
	Schema  *CollectionSchema `json:"schema"`
	Indexes []*IndexParams    `json:"indexes,omitempty"`
}

// Builder runs one document through the pipeline: version gate, validation,
// then construction. A Builder is single use.
type Builder struct {
	doc           *parser.Document
	clientVersion string
	strict        bool

	state  BuildState
	result *ValidationResult
}

// NewBuilder wraps a parsed document. The runtime client version defaults to
// the configured one.
func NewBuilder(doc *parser.Document) *Builder {
	return &Builder{
		doc:           doc,
		clientVersion: config.DefaultConfig.Client.Version,
		strict:        config.DefaultConfig.Schema.StrictKeys,
		state:         StateLoaded,
	}
}

// WithStrict escalates unknown attribute findings to errors.
func (b *Builder) WithStrict(strict bool) *Builder {
	b.strict = strict
	return b
}

// WithClientVersion overrides the runtime client version the gate and the
// feature checks compare against.
func (b *Builder) WithClientVersion(version string) *Builder {
	b.clientVersion = version
	return b
}

func (b *Builder) State() BuildState {
	return b.state
}

// Result returns the validation result of the last Check or Build run, nil
// before validation happened.
func (b *Builder) Result() *ValidationResult {
	return b.result
}

// Check runs the version gate and full validation without building. The
// returned result carries every finding; the error is non-nil when the
// document is rejected. A gate or parse failure returns a nil result.
func (b *Builder) Check() (*ValidationResult, error) {
	constraint, err := ClientRequirement(b.doc.Root())
	if err != nil {
		b.state = StateRejected
		return nil, err
	}

	if err = constraint.Check(b.clientVersion); err != nil {
		b.state = StateRejected
		return nil, err
	}
	b.state = StateVersionChecked

	validator, err := NewValidator(b.doc, b.clientVersion)
	if err != nil {
		b.state = StateRejected
		return nil, err
	}

	b.result = validator.Strict(b.strict).Validate()

	if b.result.HasErrors() {
		b.state = StateRejected
		return b.result, validationError(b.result)
	}

	b.state = StateValidated
	return b.result, nil
}

// validationError folds the error messages of a result into one aggregate
// error, so callers can report everything wrong in a single return.
func validationError(res *ValidationResult) error {
	var merr *multierror.Error
	for _, msg := range res.Errors() {
		if msg.Path != "" {
			merr = multierror.Append(merr, errors.Validation("%s: %s", msg.Path, msg.Text))
		} else {
			merr = multierror.Append(merr, errors.Validation("%s", msg.Text))
		}
	}
	return merr.ErrorOrNil()
}

// Build validates the document if it has not been validated yet and
// constructs the collection schema and index requests. Only a validated
// document reaches construction, so a failure inside construction is an
// internal invariant violation.
func (b *Builder) Build() (*Built, error) {
	if b.state != StateValidated {
		if _, err := b.Check(); err != nil {
			return nil, err
		}
	}

	name, err := b.doc.Name()
	if err != nil {
		return nil, err
	}
	alias, err := b.doc.Alias()
	if err != nil {
		return nil, err
	}

	schema := &CollectionSchema{
		Name:        name,
		Description: b.doc.Description(),
		Alias:       alias,
	}

	rawFields, err := b.doc.Fields()
	if err != nil {
		return nil, err
	}

	fieldTypes := make(map[string]FieldType, len(rawFields))
	fieldOrder := make([]string, 0, len(rawFields))

	for _, raw := range rawFields {
		builder, err := NewFieldBuilder(raw)
		if err != nil {
			return nil, err
		}

		field, err := builder.Build()
		if err != nil {
			b.state = StateRejected
			return nil, err
		}

		schema.Fields = append(schema.Fields, field)
		fieldTypes[field.Name] = field.DataType
		fieldOrder = append(fieldOrder, field.Name)
	}

	rawFunctions, err := b.doc.Functions()
	if err != nil {
		return nil, err
	}

	var fb FunctionBuilder
	for _, raw := range rawFunctions {
		fn, err := fb.Build(raw)
		if err != nil {
			b.state = StateRejected
			return nil, err
		}
		schema.Functions = append(schema.Functions, fn)
	}

	if err = b.applySettings(schema); err != nil {
		b.state = StateRejected
		return nil, err
	}

	indexes, err := b.buildIndexes(fieldTypes, fieldOrder, rawFunctions)
	if err != nil {
		b.state = StateRejected
		return nil, err
	}

	b.state = StateBuilt

	return &Built{Schema: schema, Indexes: indexes}, nil
}

func (b *Builder) applySettings(schema *CollectionSchema) error {
	settings, err := b.doc.Settings()
	if err != nil {
		return err
	}

	if val, ok := settings["consistency_level"].(string); ok {
		level, err := ConsistencyLevelOf(val)
		if err != nil {
			return errors.Internal("consistency level reached build unvalidated: %v", err)
		}
		schema.ConsistencyLevel = &level
	}

	if val, ok := settings["ttl_seconds"]; ok {
		if n, isInt := asInt64(val); isInt {
			schema.TTLSeconds = &n
		}
	}

	if val, ok := settings["enable_dynamic_field"].(bool); ok {
		schema.EnableDynamicField = val
	}

	if val, ok := settings["num_shards"]; ok {
		if n, isInt := asInt64(val); isInt {
			schema.NumShards = &n
		}
	}

	if schema.Description == "" {
		if val, ok := settings["description"].(string); ok {
			schema.Description = val
		}
	}

	return nil
}

func (b *Builder) buildIndexes(fieldTypes map[string]FieldType, fieldOrder []string, rawFunctions []map[string]any) ([]*IndexParams, error) {
	rawIndexes, err := b.doc.Indexes()
	if err != nil {
		return nil, err
	}

	settings, err := b.doc.Settings()
	if err != nil {
		return nil, err
	}
	autoindex := autoindexSetting(b.doc.Root(), settings)

	builder := NewIndexBuilder(fieldTypes, autoindex, bm25OutputFields(rawFunctions))

	declared := container.NewHashSet()
	indexes := make([]*IndexParams, 0, len(rawIndexes))

	for _, raw := range rawIndexes {
		params, err := builder.Build(raw)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, params)
		declared.Insert(params.FieldName)
	}

	indexes = append(indexes, builder.SyntheticIndexes(fieldOrder, declared)...)

	return indexes, nil
}

// CheckFile loads a schema file and validates it.
func CheckFile(path, clientVersion string) (*ValidationResult, error) {
	doc, err := parser.Load(path)
	if err != nil {
		return nil, err
	}

	return NewBuilder(doc).WithClientVersion(clientVersion).Check()
}

// BuildFile loads a schema file, validates it, and builds the translated
// output. The result carries warnings and infos even on success.
func BuildFile(path, clientVersion string) (*Built, *ValidationResult, error) {
	doc, err := parser.Load(path)
	if err != nil {
		return nil, nil, err
	}

	builder := NewBuilder(doc).WithClientVersion(clientVersion)
	built, err := builder.Build()

	return built, builder.Result(), err
}
