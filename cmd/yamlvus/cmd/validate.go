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

	"github.com/yamlvus/yamlvus/parser"
	"github.com/yamlvus/yamlvus/schema"
)

var quiet bool

// checkOne validates a single schema file and prints its findings. It
// reports whether the file passed.
func checkOne(path, version string, strict bool) bool {
	doc, err := parser.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}

	builder := schema.NewBuilder(doc).
		WithClientVersion(version).
		WithStrict(strict)

	_, checkErr := builder.Check()

	res := builder.Result()
	if res == nil {
		// rejected before validation: version gate or document shape
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, checkErr)
		return false
	}

	for _, msg := range res.Messages {
		if quiet && msg.Severity != schema.SeverityError {
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, msg)
	}

	return checkErr == nil
}

var validateCmd = &cobra.Command{
	Use:   "validate {schema.yaml}...",
	Short: "Validate schema files without building",
	Long: `Validate runs every schema rule against the given files and reports all
findings at once. The exit status is zero only when every file passes.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		version := effectiveClientVersion(cmd)
		strict := effectiveStrict(cmd)

		failed := 0
		for _, path := range args {
			if !checkOne(path, version, strict) {
				failed++
			}
		}

		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print errors only")

	rootCmd.AddCommand(validateCmd)
}
