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
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/yamlvus/yamlvus/schema"
	"github.com/yamlvus/yamlvus/util"
)

var output string

var convertCmd = &cobra.Command{
	Use:   "convert {schema.yaml}",
	Short: "Build a schema file and write the result as JSON",
	Long: `Convert validates and builds a schema file, then writes the collection
schema and index requests as JSON, ready to replay against the target.
Warnings do not block conversion; any error does.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		built, res, err := schema.BuildFile(args[0], effectiveClientVersion(cmd))
		if err != nil {
			if res != nil {
				for _, msg := range res.Errors() {
					util.Stderrf("%s\n", msg)
				}
			} else {
				util.Stderrf("%v\n", err)
			}
			os.Exit(1)
		}

		for _, msg := range res.Warnings() {
			util.Stderrf("%s\n", msg)
		}

		b, err := jsoniter.MarshalIndent(built, "", "  ")
		util.Fatal(err, "marshal built schema")

		w := os.Stdout
		if output != "" && output != "-" {
			w, err = os.Create(output)
			util.Fatal(err, "create output file")
			defer w.Close()
		}

		_, err = w.Write(append(b, '\n'))
		util.Fatal(err, "write output")
	},
}

func init() {
	convertCmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file instead of stdout")

	rootCmd.AddCommand(convertCmd)
}
