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

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/nps/source"
)

// Store manages the on-disk package listing snapshot.
type Store struct {
	dir    string
	file   string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a Store for the cache file at dir/file. The
// directory is created lazily on the first refresh, not here, so a
// Store over an absent cache is valid and simply reports !Exists().
func NewStore(dir, file string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache directory required")
	}
	if file == "" {
		return nil, errors.New("cache file name required")
	}

	s := &Store{
		dir:    dir,
		file:   file,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the full path of the cache file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, s.file)
}

// Exists reports whether the cache file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

// Age returns how long ago the cache was last refreshed.
func (s *Store) Age() (time.Duration, error) {
	info, err := os.Stat(s.Path())
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrCacheUnavailable, s.Path(), err)
	}
	return time.Since(info.ModTime()), nil
}

// Read returns the raw cache lines in file order. A present but empty
// cache yields zero lines; a missing or unreadable cache fails with
// ErrCacheUnavailable.
func (s *Store) Read() ([]string, error) {
	content, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCacheUnavailable, s.Path(), err)
	}

	text := strings.TrimRight(string(content), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// Refresh obtains a full new listing from src and replaces the cache
// snapshot atomically. It returns the number of cached records. The
// previous snapshot survives every failure path: source errors, empty
// listings, and interrupted writes all leave the live file untouched.
func (s *Store) Refresh(ctx context.Context, src source.Source) (int, error) {
	if src == nil {
		return 0, ErrNilSource
	}

	s.logger.Debug("refreshing cache", "path", s.Path())

	listing, err := src.ProduceListing(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	count := countRecords(listing)
	if count == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEmptyListing, s.Path())
	}

	if err := s.publish(listing); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	s.logger.Debug("cache refreshed", "path", s.Path(), "records", count)
	return count, nil
}

// publish writes the listing to a temporary file in the cache
// directory and renames it over the live file. The temporary file is
// removed on every failure path.
func (s *Store) publish(listing string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, s.file+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if !strings.HasSuffix(listing, "\n") {
		listing += "\n"
	}

	if _, err := tmp.WriteString(listing); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// countRecords counts the non-empty lines of a listing.
func countRecords(listing string) int {
	count := 0
	for _, line := range strings.Split(listing, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
