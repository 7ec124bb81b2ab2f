// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package source

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/poiesic/nps/core"
)

// ParseLegacyListing converts "nix-env -qaP --description" output into
// cache lines. Each input line holds an attribute path, a name-version
// token, and an optional description, separated by runs of spaces for
// column alignment. Lines that yield no identifier are dropped.
func ParseLegacyListing(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		attr, rest := cutToken(line)
		if attr == "" {
			continue
		}

		nameVer, description := cutToken(rest)
		_, version := SplitDrvName(nameVer)

		record := core.PackageRecord{
			Identifier:  attr,
			Version:     version,
			Description: description,
		}
		lines = append(lines, record.Line())
	}
	return lines
}

// registryPackage mirrors one value of the "nix search --json" object.
type registryPackage struct {
	Pname       string `json:"pname"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// ParseRegistryListing converts "nix search nixpkgs ^ --json" output
// into cache lines sorted lexicographically. The JSON object is keyed
// by full attribute path; the identifier written to the cache is the
// bare pname, matching how the registry backend is queried.
func ParseRegistryListing(raw []byte) ([]string, error) {
	var parsed map[string]registryPackage
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedListing, err)
	}

	lines := make([]string, 0, len(parsed))
	for _, pkg := range parsed {
		if pkg.Pname == "" {
			continue
		}
		record := core.PackageRecord{
			Identifier:  pkg.Pname,
			Version:     pkg.Version,
			Description: pkg.Description,
		}
		lines = append(lines, record.Line())
	}
	sort.Strings(lines)
	return lines, nil
}

// SplitDrvName splits a nix derivation name like "ripgrep-14.1.0" into
// name and version. The version starts at the first dash followed by a
// character that is not a letter; a name without such a dash has no
// version.
func SplitDrvName(nameVer string) (name, version string) {
	for i := 0; i+1 < len(nameVer); i++ {
		if nameVer[i] != '-' {
			continue
		}
		next := nameVer[i+1]
		if isLetter(next) {
			continue
		}
		return nameVer[:i], nameVer[i+1:]
	}
	return nameVer, ""
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// cutToken splits off the first space-delimited token, returning it and
// the remainder with the separating space run removed.
func cutToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t")
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimLeft(s[idx:], " \t")
}
