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

package main

import (
	"github.com/spf13/pflag"

	"github.com/yamlvus/yamlvus/cmd/yamlvus/cmd"
	"github.com/yamlvus/yamlvus/config"
	ulog "github.com/yamlvus/yamlvus/util/log"
)

func main() {
	ulog.Configure(ulog.LogConfig{Level: "error"})

	pflag.CommandLine = pflag.NewFlagSet("", pflag.ContinueOnError)

	config.LoadConfig("yamlvus", &config.DefaultConfig)

	ulog.Configure(config.DefaultConfig.Log)

	cmd.Execute()
}
