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

	"github.com/yamlvus/yamlvus/errors"
	"github.com/yamlvus/yamlvus/lib/container"
)

// ConsistencyLevel mirrors the target client's consistency enumeration.
type ConsistencyLevel int32

const (
	ConsistencyStrong     ConsistencyLevel = 0
	ConsistencySession    ConsistencyLevel = 1
	ConsistencyBounded    ConsistencyLevel = 2
	ConsistencyEventually ConsistencyLevel = 3
)

var consistencyLevelNames = map[ConsistencyLevel]string{
	ConsistencyStrong:     "Strong",
	ConsistencySession:    "Session",
	ConsistencyBounded:    "Bounded",
	ConsistencyEventually: "Eventually",
}

func (l ConsistencyLevel) String() string {
	if name, ok := consistencyLevelNames[l]; ok {
		return name
	}
	return "Unknown"
}

// ConsistencyLevelOf resolves a declared consistency level, case-insensitive.
func ConsistencyLevelOf(declared string) (ConsistencyLevel, error) {
	for level, name := range consistencyLevelNames {
		if strings.EqualFold(name, declared) {
			return level, nil
		}
	}
	return ConsistencyStrong, errors.Validation(
		"unsupported consistency level '%s'. Supported levels: %s",
		declared, strings.Join(ConsistencyLevelTags(), ", "))
}

// ConsistencyLevelTags returns the accepted level names in enum order.
func ConsistencyLevelTags() []string {
	return []string{"Strong", "Session", "Bounded", "Eventually"}
}

// Keys recognized in the settings section. The autoindex spellings are
// aliases of one another and are also accepted at the document top level.
var (
	autoindexSettingKeys       = []string{"autoindex", "enable_autoindex", "use_autoindex", "auto_index"}
	SupportedSettingAttributes = container.NewHashSet(
		append([]string{"consistency_level", "ttl_seconds", "enable_dynamic_field", "num_shards", "description"},
			autoindexSettingKeys...)...,
	)
)

// autoindexDeclaration is one autoindex spelling found in the document.
type autoindexDeclaration struct {
	Key   string
	Value any
}

// autoindexDeclarations collects every autoindex spelling present at the top
// level or under settings, in alias order.
func autoindexDeclarations(root, settings map[string]any) []autoindexDeclaration {
	var found []autoindexDeclaration
	for _, key := range autoindexSettingKeys {
		if v, ok := root[key]; ok {
			found = append(found, autoindexDeclaration{Key: key, Value: v})
		}
		if v, ok := settings[key]; ok {
			found = append(found, autoindexDeclaration{Key: key, Value: v})
		}
	}
	return found
}

// autoindexSetting resolves the effective autoindex flag. Only a single
// well-typed declaration enables it; duplicates and wrong kinds are reported
// by the validator.
func autoindexSetting(root, settings map[string]any) bool {
	found := autoindexDeclarations(root, settings)
	if len(found) != 1 {
		return false
	}

	b, ok := found[0].Value.(bool)
	return ok && b
}

// CollectionSchema is the fully built collection definition, shaped after
// the target client's schema object.
type CollectionSchema struct {
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	Alias              string            `json:"alias,omitempty"`
	Fields             []*Field          `json:"fields"`
	Functions          []*Function       `json:"functions,omitempty"`
	EnableDynamicField bool              `json:"enable_dynamic_field,omitempty"`
	ConsistencyLevel   *ConsistencyLevel `json:"consistency_level,omitempty"`
	TTLSeconds         *int64            `json:"ttl_seconds,omitempty"`
	NumShards          *int64            `json:"num_shards,omitempty"`
}

// PrimaryField returns the primary key field of a built schema.
func (s *CollectionSchema) PrimaryField() *Field {
	for _, f := range s.Fields {
		if f.PrimaryKey {
			return f
		}
	}
	return nil
}

// Field returns the named field, or nil.
func (s *CollectionSchema) Field(name string) *Field {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// VectorFields returns the fields carrying a vector type, in declaration
// order.
func (s *CollectionSchema) VectorFields() []*Field {
	var vectors []*Field
	for _, f := range s.Fields {
		if f.DataType.IsVector() {
			vectors = append(vectors, f)
		}
	}
	return vectors
}
