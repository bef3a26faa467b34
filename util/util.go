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

package util

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	ulog "github.com/yamlvus/yamlvus/util/log"
)

// Version of this build.
var Version string

// Service program name used in logging.
var Service = "yamlvus"

func ExecTemplate(w io.Writer, tmpl string, vars any) error {
	t, err := template.New("exec_template").Funcs(template.FuncMap{"repeat": strings.Repeat, "join": strings.Join}).Parse(tmpl)
	if ulog.E(err) {
		return err
	}

	if err = t.Execute(w, vars); ulog.E(err) {
		return err
	}

	return nil
}

func MapToJSON(data map[string]any) ([]byte, error) {
	var buffer bytes.Buffer

	encoder := jsoniter.NewEncoder(&buffer)

	if err := encoder.Encode(data); ulog.E(err) {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func JSONToMap(data []byte) (map[string]any, error) {
	var decoded map[string]any

	decoder := jsoniter.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	if err := decoder.Decode(&decoded); ulog.E(err) {
		return nil, err
	}

	return decoded, nil
}

func Stdoutf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stdout, format, args...)
}

func Stderrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}

// Fatal logs the error and terminates the process when err is not nil.
func Fatal(err error, msg string) {
	if err == nil {
		return
	}

	log.Fatal().Err(err).Msg(msg)
}
