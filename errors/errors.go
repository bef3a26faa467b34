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

package errors

import (
	"errors"
	"fmt"
)

// Code classifies a schema pipeline failure. The set is closed: every error
// the library returns carries exactly one of these.
type Code int

const (
	CodeUnknown Code = iota
	// CodeParse is malformed input text or document structure. Surfaced
	// immediately, before validation begins.
	CodeParse
	// CodeUnknownType is a reference to an unregistered field type tag.
	CodeUnknownType
	// CodeUnknownIndex is a reference to an unregistered index type.
	CodeUnknownIndex
	// CodeUnknownMetric is a reference to an unregistered metric.
	CodeUnknownMetric
	// CodeVersionFormat is a malformed version string or an inconsistent
	// version constraint declaration.
	CodeVersionFormat
	// CodeVersionRange means the runtime client version is outside the
	// declared bounds.
	CodeVersionRange
	// CodeValidation aggregates one or more error-severity validation
	// messages. Only raised after a full validation pass.
	CodeValidation
	// CodeInternal is a builder invoked on data that should have failed
	// validation. Signals a bug in this library, not bad user input.
	CodeInternal
)

var codeNames = map[Code]string{
	CodeUnknown:       "unknown",
	CodeParse:         "parse",
	CodeUnknownType:   "unknown_type",
	CodeUnknownIndex:  "unknown_index",
	CodeUnknownMetric: "unknown_metric",
	CodeVersionFormat: "version_format",
	CodeVersionRange:  "version_range",
	CodeValidation:    "validation",
	CodeInternal:      "internal",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return codeNames[CodeUnknown]
}

// Error is the user facing error of the schema pipeline. All packages in this
// repository return Error so that callers can branch on the code.
type Error struct {
	Code    Code   `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func Errorf(c Code, format string, args ...any) *Error {
	return &Error{Code: c, Message: fmt.Sprintf(format, args...)}
}

// Parse constructs a malformed-input error.
func Parse(format string, args ...any) error {
	return Errorf(CodeParse, format, args...)
}

// UnknownType constructs an unregistered field type error.
func UnknownType(format string, args ...any) error {
	return Errorf(CodeUnknownType, format, args...)
}

// UnknownIndex constructs an unregistered index type error.
func UnknownIndex(format string, args ...any) error {
	return Errorf(CodeUnknownIndex, format, args...)
}

// UnknownMetric constructs an unregistered metric error.
func UnknownMetric(format string, args ...any) error {
	return Errorf(CodeUnknownMetric, format, args...)
}

// VersionFormat constructs a malformed version string error.
func VersionFormat(format string, args ...any) error {
	return Errorf(CodeVersionFormat, format, args...)
}

// VersionRange constructs a version bound violation error.
func VersionRange(format string, args ...any) error {
	return Errorf(CodeVersionRange, format, args...)
}

// Validation constructs one entry of the validation aggregate.
func Validation(format string, args ...any) error {
	return Errorf(CodeValidation, format, args...)
}

// Internal constructs a build invariant violation error.
func Internal(format string, args ...any) error {
	return Errorf(CodeInternal, format, args...)
}

// CodeOf extracts the classification of err, walking wrapped chains.
// Non-library errors report CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// Convenience helpers.

var (
	As = errors.As
	Is = errors.Is
)
