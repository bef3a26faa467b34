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

	"github.com/spf13/cobra"

	"github.com/yamlvus/yamlvus/schema"
	"github.com/yamlvus/yamlvus/util"
)

const infoTemplate = `collection: {{.Schema.Name}}
{{- if .Schema.Description}}
description: {{.Schema.Description}}
{{- end}}
{{- if .Schema.Alias}}
alias: {{.Schema.Alias}}
{{- end}}
fields:
{{- range .Schema.Fields}}
  - {{.Name}} ({{.DataType}}{{if .PrimaryKey}}, primary{{end}}{{if .AutoID}}, auto_id{{end}}{{if .Dim}}, dim={{.Dim}}{{end}}{{if .MaxLength}}, max_length={{.MaxLength}}{{end}})
{{- end}}
{{- if .Indexes}}
indexes:
{{- range .Indexes}}
  - {{.FieldName}}: {{.IndexType}}{{if .MetricType}} ({{.MetricType}}){{end}}
{{- end}}
{{- end}}
{{- if .Schema.Functions}}
functions:
{{- range .Schema.Functions}}
  - {{.Name}}: {{.Type}} ({{join .InputFieldNames ", "}} -> {{join .OutputFieldNames ", "}})
{{- end}}
{{- end}}
`

var infoCmd = &cobra.Command{
	Use:   "info {schema.yaml}",
	Short: "Build a schema file and print a summary of the result",
	Args:  cobra.ExactArgs(1),
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

		util.Fatal(util.ExecTemplate(os.Stdout, infoTemplate, built), "render summary")
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
