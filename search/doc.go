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


// Package search classifies cached package records against a search term.
//
// The Classifier type partitions records into three disjoint tiers:
//   - Exact: the package name equals the term
//   - Direct: the package name starts with the term
//   - Indirect: the term appears anywhere in the identifier, version,
//     or description
//
// The first tier whose test passes claims the record, so a record is
// never reported twice. Records matching no tier are dropped. Within
// each tier, records keep the order of the underlying cache.
//
// The package name used by the Exact and Direct tiers is the
// identifier with its channel or flake prefix removed, so a search for
// "hello" exact-matches both "nixos.hello" and "nixpkgs#hello".
package search
