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
	"github.com/yamlvus/yamlvus/errors"
	"github.com/yamlvus/yamlvus/lib/container"
)

// SupportedIndexAttributes are the keys an index definition may carry.
var SupportedIndexAttributes = container.NewHashSet(
	"field",
	"type",
	"metric",
	"params",
)

// IndexParams is one built index request, shaped the way the target client
// accepts it.
type IndexParams struct {
	FieldName  string         `json:"field_name"`
	IndexType  string         `json:"index_type"`
	MetricType string         `json:"metric_type,omitempty"`
	Params     map[string]any `json:"params,omitempty"`
}

// ToMap renders the request as a flat params mapping.
func (p *IndexParams) ToMap() map[string]any {
	m := map[string]any{
		"field_name": p.FieldName,
		"index_type": p.IndexType,
	}
	if p.MetricType != "" {
		m["metric_type"] = p.MetricType
	}
	for k, v := range p.Params {
		m[k] = v
	}
	return m
}

// IndexBuilder converts validated index definitions into typed index
// requests, resolving the type and metric defaults validation allowed
// through.
type IndexBuilder struct {
	// fieldTypes maps declared field names to their resolved types.
	fieldTypes map[string]FieldType

	// autoindex is the collection-level automatic index setting; it supplies
	// the index type for dense vector entries that declare none.
	autoindex bool

	// bm25Outputs are the fields produced by BM25 functions, which default
	// to a sparse inverted index with the BM25 metric.
	bm25Outputs container.HashSet
}

func NewIndexBuilder(fieldTypes map[string]FieldType, autoindex bool, bm25Outputs container.HashSet) *IndexBuilder {
	return &IndexBuilder{
		fieldTypes:  fieldTypes,
		autoindex:   autoindex,
		bm25Outputs: bm25Outputs,
	}
}

// resolveIndexType picks the index type for an entry that declared none.
// Empty when no default applies.
func (b *IndexBuilder) resolveIndexType(fieldName string) string {
	if b.bm25Outputs.Contains(fieldName) {
		return "SPARSE_INVERTED_INDEX"
	}

	t, ok := b.fieldTypes[fieldName]
	if !ok {
		return ""
	}

	if b.autoindex && t.IsFloatFamilyVector() {
		return "AUTOINDEX"
	}

	if t == SparseFloatVectorType {
		return "SPARSE_INVERTED_INDEX"
	}

	return ""
}

// Build converts one raw index definition. The builder assumes the
// definition passed validation.
func (b *IndexBuilder) Build(raw map[string]any) (*IndexParams, error) {
	fieldName, ok := raw["field"].(string)
	if !ok || fieldName == "" {
		return nil, errors.Internal("index definition reached build without a field reference")
	}

	indexType, _ := raw["type"].(string)
	if indexType == "" {
		indexType = b.resolveIndexType(fieldName)
	}
	if indexType == "" {
		return nil, errors.Internal("index on field '%s' reached build without an index type", fieldName)
	}

	desc, err := IndexOf(indexType)
	if err != nil {
		return nil, err
	}

	params := &IndexParams{
		FieldName: fieldName,
		IndexType: desc.Name,
	}

	if metric, ok := raw["metric"].(string); ok && metric != "" {
		md, err := MetricOf(metric)
		if err != nil {
			return nil, err
		}
		params.MetricType = md.Name
	}

	if declared, ok := raw["params"].(map[string]any); ok && len(declared) > 0 {
		params.Params = make(map[string]any, len(declared))
		for k, v := range declared {
			params.Params[k] = v
		}
	}

	b.applyDefaults(params)

	return params, nil
}

// applyDefaults fills in the parameters the target expects but the schema
// may omit.
func (b *IndexBuilder) applyDefaults(p *IndexParams) {
	switch p.IndexType {
	case "SPARSE_INVERTED_INDEX":
		if p.MetricType == "" {
			if b.bm25Outputs.Contains(p.FieldName) {
				p.MetricType = "BM25"
			} else {
				p.MetricType = "IP"
			}
		}
		if _, ok := p.Params["inverted_index_algo"]; !ok {
			if p.Params == nil {
				p.Params = map[string]any{}
			}
			p.Params["inverted_index_algo"] = "DAAT_MAXSCORE"
		}
		if p.MetricType == "BM25" {
			if _, ok := p.Params["bm25_k1"]; !ok {
				p.Params["bm25_k1"] = 1.2
			}
			if _, ok := p.Params["bm25_b"]; !ok {
				p.Params["bm25_b"] = 0.75
			}
		}
	}
}

// SyntheticIndexes produces the index requests for fields no index entry
// names but that still receive one: BM25 output fields. Declared is the set
// of fields already covered by explicit entries.
func (b *IndexBuilder) SyntheticIndexes(fieldOrder []string, declared container.HashSet) []*IndexParams {
	var synthetic []*IndexParams
	for _, name := range fieldOrder {
		if declared.Contains(name) || !b.bm25Outputs.Contains(name) {
			continue
		}

		p := &IndexParams{
			FieldName:  name,
			IndexType:  "SPARSE_INVERTED_INDEX",
			MetricType: "BM25",
		}
		b.applyDefaults(p)
		synthetic = append(synthetic, p)
	}

	return synthetic
}
