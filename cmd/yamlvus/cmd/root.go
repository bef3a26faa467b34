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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yamlvus/yamlvus/config"
	"github.com/yamlvus/yamlvus/util"
)

var (
	clientVersion string
	strictKeys    bool
)

var rootCmd = &cobra.Command{
	Use:   "yamlvus",
	Short: "Translate declarative YAML schemas into vector database collections",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		v := util.Version
		if v == "" {
			v = "dev"
		}
		fmt.Fprintln(os.Stdout, v)
	},
}

// effectiveClientVersion resolves the runtime client version for one
// invocation. Flag defaults are snapshotted in init, before the
// configuration is loaded, so an unchanged flag defers to the loaded
// configuration and its environment overrides.
func effectiveClientVersion(cmd *cobra.Command) string {
	if f := cmd.Flag("client-version"); f != nil && f.Changed {
		return f.Value.String()
	}
	return config.DefaultConfig.Client.Version
}

func effectiveStrict(cmd *cobra.Command) bool {
	if f := cmd.Flag("strict"); f != nil && f.Changed {
		return f.Value.String() == "true"
	}
	return config.DefaultConfig.Schema.StrictKeys
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&clientVersion, "client-version", config.DefaultConfig.Client.Version,
		"client library version the schema is checked against")
	rootCmd.PersistentFlags().BoolVar(&strictKeys, "strict", config.DefaultConfig.Schema.StrictKeys,
		"treat unknown attributes as errors")

	rootCmd.AddCommand(versionCmd)
}
