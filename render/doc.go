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


// Package render prints classified matches as aligned columns.
//
// # Layout
//
// Each match prints on one line. The identifier column is padded to
// the widest identifier across every printed tier, the version column
// to the widest version, with a two space gutter between columns. The
// Columns selection selects which columns appear: all, none, version,
// or description. The version column is only padded when a description
// column follows it.
//
// # Tiers and color
//
// Tiers print in the order Exact, Direct, Indirect, reversed when Flip
// is set. Each tier carries its own color, and only the occurrences of
// the search term within a line are styled, in the tier color plus
// bold. ColorMode decides whether styling is emitted at all: always
// and never force it on or off, auto checks whether the output is a
// terminal.
package render
