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

import "fmt"

// Severity of a validation message. Only error severity blocks building.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// ValidationMessage is one finding of the validator. Path is a dotted
// location within the configuration tree, empty for document level findings.
type ValidationMessage struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Text     string   `json:"text"`
}

func (m ValidationMessage) String() string {
	if m.Path == "" {
		return fmt.Sprintf("%s: %s", m.Severity, m.Text)
	}
	return fmt.Sprintf("%s: %s: %s", m.Severity, m.Path, m.Text)
}

// ValidationResult accumulates messages in traversal order. The validator
// never stops at the first problem; one pass surfaces the complete set.
type ValidationResult struct {
	Messages []ValidationMessage `json:"messages,omitempty"`
}

func NewValidationResult() *ValidationResult {
	return &ValidationResult{}
}

func (r *ValidationResult) add(severity Severity, path, format string, args ...any) {
	r.Messages = append(r.Messages, ValidationMessage{
		Severity: severity,
		Path:     path,
		Text:     fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) Error(path, format string, args ...any) {
	r.add(SeverityError, path, format, args...)
}

func (r *ValidationResult) Warn(path, format string, args ...any) {
	r.add(SeverityWarning, path, format, args...)
}

func (r *ValidationResult) Info(path, format string, args ...any) {
	r.add(SeverityInfo, path, format, args...)
}

func (r *ValidationResult) Merge(other *ValidationResult) {
	r.Messages = append(r.Messages, other.Messages...)
}

func (r *ValidationResult) Errors() []ValidationMessage {
	return r.filter(SeverityError)
}

func (r *ValidationResult) Warnings() []ValidationMessage {
	return r.filter(SeverityWarning)
}

func (r *ValidationResult) Infos() []ValidationMessage {
	return r.filter(SeverityInfo)
}

func (r *ValidationResult) filter(severity Severity) []ValidationMessage {
	var out []ValidationMessage
	for _, m := range r.Messages {
		if m.Severity == severity {
			out = append(out, m)
		}
	}
	return out
}

// HasErrors reports fatal status: any error severity message blocks building.
func (r *ValidationResult) HasErrors() bool {
	for _, m := range r.Messages {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r *ValidationResult) Len() int {
	return len(r.Messages)
}

// Strings renders every message with its severity prefix, in order.
func (r *ValidationResult) Strings() []string {
	out := make([]string, 0, len(r.Messages))
	for _, m := range r.Messages {
		out = append(out, m.String())
	}
	return out
}
