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

package parser

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/yamlvus/yamlvus/errors"
)

// Collection and alias names must start with a letter and contain only
// letters, digits, and underscores.
var validCollectionName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Document is one parsed schema file. It owns the untyped configuration tree
// for the duration of a single load; validators and builders read it and
// never mutate it.
type Document struct {
	// Path of the source file, empty when parsed from a byte slice.
	Path string

	root map[string]any
}

// Load reads and parses a schema file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Parse("failed to read schema file: %v", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}

	doc.Path = path

	return doc, nil
}

// Parse turns YAML text into a Document. Malformed YAML and a non-mapping or
// empty root are parse errors; everything beyond document shape is left to
// the validator.
func Parse(data []byte) (*Document, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Parse("yaml parsing failed: %v", err)
	}

	if root == nil {
		return nil, errors.Parse("empty schema document")
	}

	mapping, ok := root.(map[string]any)
	if !ok {
		return nil, errors.Parse("schema must be a mapping, got %T", root)
	}

	return &Document{root: mapping}, nil
}

// Root exposes the raw configuration tree.
func (d *Document) Root() map[string]any {
	return d.root
}

// Name returns the collection name, validated against the naming rules.
func (d *Document) Name() (string, error) {
	v, ok := d.root["name"]
	if !ok {
		return "", errors.Parse("schema missing required 'name' field")
	}

	name, ok := v.(string)
	if !ok {
		return "", errors.Parse("collection name must be a string, got %T", v)
	}

	if err := ValidateCollectionName(name); err != nil {
		return "", err
	}

	return name, nil
}

func (d *Document) Description() string {
	if s, ok := d.root["description"].(string); ok {
		return s
	}
	return ""
}

// Alias returns the optional collection alias, validated with the same rules
// as the collection name. Empty string when absent.
func (d *Document) Alias() (string, error) {
	v, ok := d.root["alias"]
	if !ok {
		return "", nil
	}

	alias, ok := v.(string)
	if !ok {
		return "", errors.Parse("collection alias must be a string, got %T", v)
	}

	if alias == "" {
		return "", errors.Parse("collection alias cannot be empty")
	}

	if !validCollectionName.MatchString(alias) {
		return "", errors.Parse("collection alias '%s' is invalid. Alias must start with a letter and contain only letters, digits, and underscores", alias)
	}

	return alias, nil
}

// Fields returns the ordered field definitions. At least one is required.
func (d *Document) Fields() ([]map[string]any, error) {
	v, ok := d.root["fields"]
	if !ok {
		return nil, errors.Parse("schema missing required 'fields' field")
	}

	fields, err := toMappingList(v, "fields")
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, errors.Parse("schema must have at least one field")
	}

	return fields, nil
}

// Indexes returns the ordered index definitions, empty when absent.
func (d *Document) Indexes() ([]map[string]any, error) {
	v, ok := d.root["indexes"]
	if !ok {
		return nil, nil
	}

	return toMappingList(v, "indexes")
}

// Functions returns the ordered function definitions, empty when absent.
func (d *Document) Functions() ([]map[string]any, error) {
	v, ok := d.root["functions"]
	if !ok {
		return nil, nil
	}

	return toMappingList(v, "functions")
}

// Settings returns the collection-level settings mapping, empty when absent.
func (d *Document) Settings() (map[string]any, error) {
	v, ok := d.root["settings"]
	if !ok {
		return map[string]any{}, nil
	}

	settings, ok := v.(map[string]any)
	if !ok {
		return nil, errors.Parse("settings must be a mapping, got %T", v)
	}

	return settings, nil
}

// ValidateCollectionName applies the collection naming rules.
func ValidateCollectionName(name string) error {
	if name == "" {
		return errors.Parse("collection name cannot be empty")
	}

	if !validCollectionName.MatchString(name) {
		return errors.Parse("collection name '%s' is invalid. Collection name must start with a letter and contain only letters, digits, and underscores", name)
	}

	return nil
}

func toMappingList(v any, key string) ([]map[string]any, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, errors.Parse("%s must be a sequence, got %T", key, v)
	}

	list := make([]map[string]any, 0, len(seq))
	for i, entry := range seq {
		mapping, ok := entry.(map[string]any)
		if !ok {
			return nil, errors.Parse("%s[%d] must be a mapping, got %T", key, i, entry)
		}
		list = append(list, mapping)
	}

	return list, nil
}
