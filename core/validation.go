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


package core

import (
	"fmt"
	"strings"
)

// ValidateRecord validates a PackageRecord according to the cache line
// contract.
//
// Validation rules:
//   - Identifier must not be empty or whitespace-only
//
// NOT validated (optional per the cache format):
//   - Version (a line with only an identifier is valid)
//   - Description (may be empty, may contain further separators)
func ValidateRecord(record *PackageRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrMalformedLine)
	}

	if strings.TrimSpace(record.Identifier) == "" {
		return fmt.Errorf("%w: %w", ErrMalformedLine, ErrMissingIdentifier)
	}

	return nil
}

// ValidateTerm validates a search term before classification runs.
// Classification assumes a non-empty term; the CLI rejects the empty
// case before the pipeline starts.
func ValidateTerm(term string) error {
	if term == "" {
		return ErrEmptySearchTerm
	}
	return nil
}
