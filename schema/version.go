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

import (
	"strings"

	"golang.org/x/mod/semver"

	"github.com/yamlvus/yamlvus/errors"
	"github.com/yamlvus/yamlvus/lib/container"
)

// ClientRequirementKey is the top level schema key declaring version bounds
// on the target client library.
const ClientRequirementKey = "pymilvus"

// clientRequirementAliases are accepted in place of ClientRequirementKey.
var clientRequirementAliases = []string{"client"}

var supportedRequirementKeys = container.NewHashSet(
	"min_version",
	"max_version",
	"version",
	"require",
	"exact_version",
)

// VersionConstraint bounds the runtime client version. Bounds are inclusive;
// Exact excludes Min and Max.
type VersionConstraint struct {
	Min   string
	Max   string
	Exact string
}

// canonical validates a dotted-integer version string and returns the form
// the semver package compares ("v" prefixed).
func canonical(v string) (string, error) {
	c := "v" + strings.TrimPrefix(v, "v")
	if !semver.IsValid(c) {
		return "", errors.VersionFormat("invalid version string '%s'", v)
	}

	return c, nil
}

// ClientRequirement extracts the declared version constraint from the raw
// configuration tree. Nil when no constraint is declared.
func ClientRequirement(root map[string]any) (*VersionConstraint, error) {
	raw, ok := root[ClientRequirementKey]
	for _, alias := range clientRequirementAliases {
		if ok {
			break
		}
		raw, ok = root[alias]
	}

	if !ok || raw == nil {
		return nil, nil
	}

	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.VersionFormat("schema '%s' section must be a mapping with version bounds", ClientRequirementKey)
	}

	var unknown []string
	for key := range mapping {
		if !supportedRequirementKeys.Contains(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		set := container.NewHashSet(unknown...)
		return nil, errors.VersionFormat("schema '%s' section contains unsupported keys: %s", ClientRequirementKey, strings.Join(set.SortedList(), ", "))
	}

	get := func(key string) (string, error) {
		v, ok := mapping[key]
		if !ok || v == nil {
			return "", nil
		}
		s, ok := v.(string)
		if !ok {
			return "", errors.VersionFormat("schema '%s.%s' must be a version string", ClientRequirementKey, key)
		}
		if _, err := canonical(s); err != nil {
			return "", errors.VersionFormat("invalid version string for '%s.%s': %s", ClientRequirementKey, key, s)
		}
		return s, nil
	}

	c := &VersionConstraint{}

	var err error
	if c.Min, err = get("min_version"); err != nil {
		return nil, err
	}
	if c.Max, err = get("max_version"); err != nil {
		return nil, err
	}
	for _, key := range []string{"version", "require", "exact_version"} {
		exact, err := get(key)
		if err != nil {
			return nil, err
		}
		if exact != "" && c.Exact == "" {
			c.Exact = exact
		}
	}

	if c.Exact != "" && (c.Min != "" || c.Max != "") {
		return nil, errors.VersionFormat("schema '%s' section cannot combine an exact version with min/max bounds", ClientRequirementKey)
	}

	if c.Min != "" && c.Max != "" {
		min, _ := canonical(c.Min)
		max, _ := canonical(c.Max)
		if semver.Compare(min, max) > 0 {
			return nil, errors.VersionFormat("schema '%s' min_version must be less than or equal to max_version", ClientRequirementKey)
		}
	}

	return c, nil
}

// Check evaluates the constraint against the runtime client version. It runs
// before validation so an incompatible environment never produces a
// partially built schema. A nil constraint is always satisfied.
func (c *VersionConstraint) Check(runtime string) error {
	if c == nil {
		return nil
	}

	current, err := canonical(runtime)
	if err != nil {
		return err
	}

	if c.Exact != "" {
		exact, _ := canonical(c.Exact)
		if semver.Compare(current, exact) != 0 {
			return errors.VersionRange("schema requires client == %s, but current version is %s", c.Exact, runtime)
		}
	}

	if c.Min != "" {
		min, _ := canonical(c.Min)
		if semver.Compare(current, min) < 0 {
			return errors.VersionRange("schema requires client >= %s, but current version is %s", c.Min, runtime)
		}
	}

	if c.Max != "" {
		max, _ := canonical(c.Max)
		if semver.Compare(current, max) > 0 {
			return errors.VersionRange("schema requires client <= %s, but current version is %s", c.Max, runtime)
		}
	}

	return nil
}

// versionAtLeast reports whether the runtime client version satisfies a
// feature minimum. Malformed inputs report false.
func versionAtLeast(runtime, minimum string) bool {
	if minimum == "" {
		return true
	}

	current, err := canonical(runtime)
	if err != nil {
		return false
	}

	min, err := canonical(minimum)
	if err != nil {
		return false
	}

	return semver.Compare(current, min) >= 0
}
