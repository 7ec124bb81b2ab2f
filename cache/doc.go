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


// Package cache owns the on-disk snapshot of the package listing.
//
// The cache is a single flat text file, one tab-delimited record per
// line. A Store answers existence and staleness queries, reads the raw
// lines, and replaces the snapshot atomically on refresh.
//
// # Refresh Protocol
//
// Refresh writes the new listing to a temporary file created in the
// cache directory (same filesystem) and renames it over the live file.
// A reader therefore always sees either the previous complete snapshot
// or the new complete snapshot, never a partial write. Failures leave
// the previous snapshot byte-identical:
//
//   - the listing source failing surfaces as ErrRefreshFailed
//   - an empty listing surfaces as ErrEmptyListing, so a transient
//     upstream hiccup can never wipe a good cache
//   - process interruption abandons the temporary file
//
// # Concurrency
//
// Multiple concurrent readers are safe. A reader racing a refresher is
// safe through the rename discipline. Two refreshers are not
// coordinated; the last rename wins, which loses no data.
package cache
