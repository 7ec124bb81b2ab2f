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


// Package source adapts the external nix listing commands to the cache
// line format.
//
// A Source produces the complete package listing as text, one
// tab-delimited record per line. Two backends exist:
//
//   - ModeLegacy runs "nix-env -qaP --description" and normalizes its
//     whitespace-aligned columns, splitting the name-version token the
//     way nix derivation names split (first dash followed by a
//     non-letter starts the version).
//   - ModeExperimental runs "nix search nixpkgs ^ --json" and flattens
//     the JSON object into sorted lines keyed by pname.
//
// The listing command is the only external-process boundary of the
// program; everything downstream operates on the produced text.
//
// # Constructor Return Type Pattern
//
// New returns the Source interface (not the concrete CommandSource) to
// keep callers decoupled from the exec-based implementation. The
// source/mock package provides a test double with injectable behavior.
//
// # Backend Advice
//
// DetectMismatch inspects the experimental-features setting in the
// system's nix.conf and reports when the selected backend disagrees
// with how the system is set up (channels versus flakes). The probe is
// advisory: unreadable or absent configuration yields no advice.
package source
