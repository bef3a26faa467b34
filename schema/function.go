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
	"strings"
	"unicode"

	"github.com/yamlvus/yamlvus/errors"
	"github.com/yamlvus/yamlvus/lib/container"
)

// FunctionType is the target client's function kind enumeration.
type FunctionType int32

const (
	UnknownFunction FunctionType = 0
	BM25Function    FunctionType = 1
	TextEmbedding   FunctionType = 2
	Rerank          FunctionType = 3
)

func (t FunctionType) String() string {
	switch t {
	case BM25Function:
		return "BM25"
	case TextEmbedding:
		return "TEXT_EMBEDDING"
	case Rerank:
		return "RERANK"
	default:
		return "UNKNOWN"
	}
}

// functionTypeAliases maps normalized tokens to function kinds. Tokens are
// the input with every non-alphanumeric rune removed, uppercased, so that
// "text_embedding", "text-embedding", and "TextEmbedding" all resolve.
var functionTypeAliases = map[string]FunctionType{
	"BM25":           BM25Function,
	"TEXTEMBEDDING":  TextEmbedding,
	"TEXTEMBED":      TextEmbedding,
	"TEXTEMBEDDINGS": TextEmbedding,
	"RERANK":         Rerank,
	"RANKER":         Rerank,
}

// FunctionTypeOf resolves a declared function type through the alias table.
func FunctionTypeOf(declared string) (FunctionType, error) {
	var token strings.Builder
	for _, r := range declared {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			token.WriteRune(unicode.ToUpper(r))
		}
	}

	if t, ok := functionTypeAliases[token.String()]; ok {
		return t, nil
	}

	return UnknownFunction, errors.UnknownType("unsupported function type '%s'. Supported types: BM25, RERANK, TEXT_EMBEDDING", declared)
}

// Input and output field references accept several spellings; the first
// present wins.
var (
	functionInputKeys  = []string{"input_field_names", "input_fields", "fields", "input_field", "field"}
	functionOutputKeys = []string{"output_field_names", "output_fields", "output_field"}
)

// SupportedFunctionAttributes are the keys a function definition may carry.
var SupportedFunctionAttributes = container.NewHashSet(
	append(append([]string{"name", "type", "function_type", "description", "params"},
		functionInputKeys...), functionOutputKeys...)...,
)

// fieldNameList coerces a reference value into a list of names. The second
// return is false when the value has the wrong kind.
func fieldNameList(v any) ([]string, bool) {
	switch val := v.(type) {
	case string:
		return []string{val}, true
	case []any:
		names := make([]string, 0, len(val))
		for _, entry := range val {
			s, ok := entry.(string)
			if !ok {
				return nil, false
			}
			names = append(names, s)
		}
		return names, true
	default:
		return nil, false
	}
}

// functionInputs extracts the referenced input field names from a raw
// function definition. found is false when no input key is present.
func functionInputs(raw map[string]any) (names []string, found, wellFormed bool) {
	for _, key := range functionInputKeys {
		if v, ok := raw[key]; ok {
			names, wellFormed = fieldNameList(v)
			return names, true, wellFormed
		}
	}
	return nil, false, false
}

// functionOutputs extracts the referenced output field names.
func functionOutputs(raw map[string]any) (names []string, found, wellFormed bool) {
	for _, key := range functionOutputKeys {
		if v, ok := raw[key]; ok {
			names, wellFormed = fieldNameList(v)
			return names, true, wellFormed
		}
	}
	return nil, false, false
}

func functionDeclaredType(raw map[string]any) (string, bool) {
	if s, ok := raw["type"].(string); ok {
		return s, true
	}
	if s, ok := raw["function_type"].(string); ok {
		return s, true
	}
	return "", false
}

// Function is one built transformation binding.
type Function struct {
	Name             string         `json:"name"`
	Type             FunctionType   `json:"type"`
	Description      string         `json:"description,omitempty"`
	InputFieldNames  []string       `json:"input_field_names"`
	OutputFieldNames []string       `json:"output_field_names"`
	Params           map[string]any `json:"params,omitempty"`
}

// FunctionBuilder converts validated function definitions into typed
// function objects.
type FunctionBuilder struct{}

func (FunctionBuilder) Build(raw map[string]any) (*Function, error) {
	declared, ok := functionDeclaredType(raw)
	if !ok {
		return nil, errors.Internal("function definition reached build without a type")
	}

	kind, err := FunctionTypeOf(declared)
	if err != nil {
		return nil, err
	}

	inputs, found, wellFormed := functionInputs(raw)
	if !found || !wellFormed {
		return nil, errors.Internal("function definition reached build without valid input fields")
	}

	outputs, found, wellFormed := functionOutputs(raw)
	if !found || !wellFormed {
		return nil, errors.Internal("function definition reached build without valid output fields")
	}

	fn := &Function{
		Type:             kind,
		InputFieldNames:  inputs,
		OutputFieldNames: outputs,
	}

	if name, ok := raw["name"].(string); ok {
		fn.Name = name
	}
	if desc, ok := raw["description"].(string); ok {
		fn.Description = desc
	}
	if params, ok := raw["params"].(map[string]any); ok && len(params) > 0 {
		fn.Params = params
	}

	return fn, nil
}

// bm25OutputFields collects every field produced by a BM25 function. Index
// defaults depend on this set.
func bm25OutputFields(functions []map[string]any) container.HashSet {
	outputs := container.NewHashSet()

	for _, raw := range functions {
		declared, ok := functionDeclaredType(raw)
		if !ok {
			continue
		}

		if kind, err := FunctionTypeOf(declared); err != nil || kind != BM25Function {
			continue
		}

		if names, found, wellFormed := functionOutputs(raw); found && wellFormed {
			outputs.Insert(names...)
		}
	}

	return outputs
}
