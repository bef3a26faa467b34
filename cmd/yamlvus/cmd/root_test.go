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

package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/yamlvus/yamlvus/config"
)

// testCommands builds a detached root/subcommand pair carrying the same
// persistent flags as the real CLI, so flag resolution can be exercised
// without touching the shared command tree.
func testCommands() (*cobra.Command, *cobra.Command) {
	var version string
	var strict bool

	root := &cobra.Command{Use: "yamlvus"}
	sub := &cobra.Command{Use: "check", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(sub)

	root.PersistentFlags().StringVar(&version, "client-version", config.DefaultClientVersion, "")
	root.PersistentFlags().BoolVar(&strict, "strict", false, "")

	return root, sub
}

func TestEffectiveClientVersion(t *testing.T) {
	prev := config.DefaultConfig.Client.Version
	t.Cleanup(func() { config.DefaultConfig.Client.Version = prev })

	root, sub := testCommands()

	// the loaded configuration wins while the flag stays at its default,
	// matching what an environment override through the config layer sets
	config.DefaultConfig.Client.Version = "2.4.0"
	require.Equal(t, "2.4.0", effectiveClientVersion(sub))

	// an explicit flag beats the loaded configuration
	require.NoError(t, root.PersistentFlags().Set("client-version", "2.0.0"))
	require.Equal(t, "2.0.0", effectiveClientVersion(sub))
}

func TestEffectiveStrict(t *testing.T) {
	prev := config.DefaultConfig.Schema.StrictKeys
	t.Cleanup(func() { config.DefaultConfig.Schema.StrictKeys = prev })

	root, sub := testCommands()

	config.DefaultConfig.Schema.StrictKeys = true
	require.True(t, effectiveStrict(sub))

	config.DefaultConfig.Schema.StrictKeys = false
	require.False(t, effectiveStrict(sub))

	require.NoError(t, root.PersistentFlags().Set("strict", "true"))
	require.True(t, effectiveStrict(sub))
}
