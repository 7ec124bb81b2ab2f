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

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/nps/cache"
	"github.com/poiesic/nps/search"
	"github.com/poiesic/nps/source"
)

// DefaultStaleAfter is the cache age beyond which a run emits a
// stale-cache notification.
const DefaultStaleAfter = 30 * 24 * time.Hour

// Renderer prints a classified match set for a search term.
type Renderer interface {
	Render(matches *search.MatchSet, term string) error
}

// Query describes a single search request.
type Query struct {
	// Term is the text to look for. It may be empty only when Refresh
	// is set, in which case the run stops after refreshing the cache.
	Term string

	// Refresh refreshes the cache before searching. The cache is also
	// refreshed without this flag when no cache file exists yet.
	Refresh bool

	// IgnoreCase folds case while matching Term.
	IgnoreCase bool
}

// Searcher wires the cache store, the listing source and the renderer
// into the search pipeline.
type Searcher struct {
	store      *cache.Store
	src        source.Source
	renderer   Renderer
	logger     *slog.Logger
	notifier   Notifier
	staleAfter time.Duration
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithNotifier sets the progress notifier.
// Default is a no-op notifier.
func WithNotifier(notifier Notifier) Option {
	return func(s *Searcher) error {
		if notifier == nil {
			notifier = &noopNotifier{}
		}
		s.notifier = notifier
		return nil
	}
}

// WithStaleAfter sets the cache age that triggers a stale-cache
// notification. Zero or negative disables the notification.
// Default is DefaultStaleAfter.
func WithStaleAfter(d time.Duration) Option {
	return func(s *Searcher) error {
		s.staleAfter = d
		return nil
	}
}

// New creates a Searcher from its collaborators.
func New(store *cache.Store, src source.Source, renderer Renderer, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if src == nil {
		return nil, ErrSourceRequired
	}
	if renderer == nil {
		return nil, ErrRendererRequired
	}

	s := &Searcher{
		store:      store,
		src:        src,
		renderer:   renderer,
		logger:     slog.Default(),
		notifier:   &noopNotifier{},
		staleAfter: DefaultStaleAfter,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Run executes one query: refresh the cache when requested or absent,
// classify the cached listing against the term and render the result.
// A refresh-only query (empty term) stops after the refresh.
func (s *Searcher) Run(ctx context.Context, q Query) error {
	if q.Term == "" && !q.Refresh {
		return ErrNoSearchTerm
	}

	if q.Refresh || !s.store.Exists() {
		if err := s.refresh(ctx); err != nil {
			return err
		}
	} else if s.staleAfter > 0 {
		if age, err := s.store.Age(); err == nil && age > s.staleAfter {
			s.logger.Warn("package cache is stale", "age", age.Round(time.Hour), "path", s.store.Path())
			s.notifier.CacheStale(age)
		}
	}

	if q.Term == "" {
		return nil
	}

	lines, err := s.store.Read()
	if err != nil {
		return err
	}

	classifier, err := search.NewClassifier(
		search.WithIgnoreCase(q.IgnoreCase),
		search.WithLogger(s.logger),
	)
	if err != nil {
		return err
	}
	defer classifier.Release()

	matches, err := classifier.Classify(lines, q.Term)
	if err != nil {
		return err
	}
	s.logger.Debug("matches classified",
		"term", q.Term,
		"exact", len(matches.Exact),
		"direct", len(matches.Direct),
		"indirect", len(matches.Indirect))

	return s.renderer.Render(matches, q.Term)
}

func (s *Searcher) refresh(ctx context.Context) error {
	mode := s.src.Mode()
	s.logger.Debug("refreshing package cache", "mode", mode.String(), "path", s.store.Path())
	s.notifier.RefreshStarted(mode)

	count, err := s.store.Refresh(ctx, s.src)
	if err != nil {
		return err
	}
	s.logger.Info("cached package info", "packages", count, "path", s.store.Path())
	s.notifier.RefreshDone(count, s.store.Path())

	if advice := source.DetectMismatch(mode); advice != "" {
		s.logger.Warn(advice)
		s.notifier.Advice(advice)
	}
	return nil
}
