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


package cache

import "errors"

var (
	// ErrCacheUnavailable indicates the cache file is missing or
	// unreadable. On a non-refresh run this triggers an implicit
	// refresh rather than a hard failure.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrRefreshFailed indicates the listing source failed, so the
	// previous cache was left untouched.
	ErrRefreshFailed = errors.New("cache refresh failed")

	// ErrEmptyListing indicates the listing source produced zero
	// records; the previous cache was left untouched.
	ErrEmptyListing = errors.New("listing produced no packages")

	// ErrNilSource indicates Refresh was called without a listing source.
	ErrNilSource = errors.New("listing source cannot be nil")
)
