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

package config

import (
	"github.com/yamlvus/yamlvus/util/log"
)

// DefaultClientVersion is the Milvus client version the built artifacts
// target when no override is configured. Version gates in schema documents
// are evaluated against this value.
const DefaultClientVersion = "2.6.2"

// ClientConfig describes the target client library the artifacts are built
// for. The tool never connects to a server; the version only drives the
// schema version gate and optional feature availability.
type ClientConfig struct {
	Version string `mapstructure:"version" yaml:"version" json:"version"`
}

type SchemaConfig struct {
	// StrictKeys turns unknown-attribute warnings into errors.
	StrictKeys bool `mapstructure:"strict_keys" yaml:"strict_keys" json:"strict_keys"`
}

type Config struct {
	Log    log.LogConfig `yaml:"log" json:"log"`
	Client ClientConfig  `yaml:"client" json:"client"`
	Schema SchemaConfig  `yaml:"schema" json:"schema"`
}

var DefaultConfig = Config{
	Log: log.LogConfig{
		Level:  "warn",
		Format: "console",
	},
	Client: ClientConfig{
		Version: DefaultClientVersion,
	},
	Schema: SchemaConfig{
		StrictKeys: false,
	},
}
