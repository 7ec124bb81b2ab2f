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


package nps

import "errors"

var (
	// ErrStoreRequired is returned when a cache store is not provided.
	ErrStoreRequired = errors.New("cache store required")

	// ErrSourceRequired is returned when a listing source is not provided.
	ErrSourceRequired = errors.New("listing source required")

	// ErrRendererRequired is returned when a renderer is not provided.
	ErrRendererRequired = errors.New("renderer required")

	// ErrNoSearchTerm is returned when Run is called without a search
	// term and without a refresh request.
	ErrNoSearchTerm = errors.New("no search term supplied")
)
