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

import "errors"

var (
	// ErrListingCommand indicates the external listing command exited
	// non-zero or could not be started.
	ErrListingCommand = errors.New("listing command failed")

	// ErrMalformedListing indicates the listing command produced output
	// that cannot be decoded.
	ErrMalformedListing = errors.New("malformed listing output")

	// ErrUnknownMode indicates an unrecognized listing mode value.
	ErrUnknownMode = errors.New("unknown listing mode")
)
