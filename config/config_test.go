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
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("YAMLVUS_CLIENT_VERSION", "2.0.0")

	cfg := DefaultConfig
	LoadConfig("yamlvus", &cfg)

	require.Equal(t, "2.0.0", cfg.Client.Version)
	require.Equal(t, DefaultConfig.Log.Level, cfg.Log.Level)
}

func TestLoadConfigIgnoresWorkingDirectoryArtifacts(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// an extensionless file carrying the config name, the natural name of
	// a compiled binary in the same directory
	require.NoError(t, os.WriteFile("yamlvus", []byte{0x7f, 'E', 'L', 'F'}, 0o755))

	cfg := DefaultConfig
	LoadConfig("yamlvus", &cfg)

	require.Equal(t, DefaultClientVersion, cfg.Client.Version)
}
