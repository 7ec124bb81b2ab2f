package search

import (
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/nps/core"
)

// Lines classified per worker task. Large enough that task overhead
// stays negligible against a full nixpkgs listing.
const chunkSize = 2048

// tier identifies the bucket a record falls into. The zero value marks
// records that matched no tier, so skipped lines drop out naturally.
type tier int

const (
	tierNone tier = iota
	tierExact
	tierDirect
	tierIndirect
)

type verdict struct {
	record core.PackageRecord
	tier   tier
}

// Classifier partitions cache lines into match tiers. Lines are
// scanned concurrently over a worker pool, with results reassembled in
// cache order.
type Classifier struct {
	pool       *ants.Pool
	ignoreCase bool
	logger     *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithPoolSize sets the worker pool size for concurrent scanning.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(c *Classifier) error {
		if size < 1 {
			size = 1
		}

		if c.pool != nil {
			c.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		c.pool = pool
		return nil
	}
}

// WithIgnoreCase controls case folding during matching.
// Default is true.
func WithIgnoreCase(ignoreCase bool) Option {
	return func(c *Classifier) error {
		c.ignoreCase = ignoreCase
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClassifier creates a new classifier.
func NewClassifier(opts ...Option) (*Classifier, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	c := &Classifier{
		pool:       pool,
		ignoreCase: true,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			c.Release()
			return nil, err
		}
	}

	return c, nil
}

// Classify scans lines for term and partitions the hits into tiers.
// Malformed lines are logged at debug level and skipped. Each tier
// preserves the relative order of lines.
func (c *Classifier) Classify(lines []string, term string) (*MatchSet, error) {
	if err := core.ValidateTerm(term); err != nil {
		return nil, err
	}

	folded := core.Fold(term, c.ignoreCase)
	verdicts := make([]verdict, len(lines))

	var wg sync.WaitGroup
	for start := 0; start < len(lines); start += chunkSize {
		start := start
		end := min(start+chunkSize, len(lines))

		wg.Add(1)
		task := func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				record, err := core.ParseLine(lines[i])
				if err != nil {
					c.logger.Debug("skipping malformed cache line", "line", lines[i], "err", err)
					continue
				}
				verdicts[i] = verdict{record: record, tier: c.classify(&record, folded)}
			}
		}
		if err := c.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	set := &MatchSet{}
	for i := range verdicts {
		switch verdicts[i].tier {
		case tierExact:
			set.Exact = append(set.Exact, verdicts[i].record)
		case tierDirect:
			set.Direct = append(set.Direct, verdicts[i].record)
		case tierIndirect:
			set.Indirect = append(set.Indirect, verdicts[i].record)
		}
	}

	c.logger.Debug("classified cache lines",
		"lines", len(lines),
		"exact", len(set.Exact),
		"direct", len(set.Direct),
		"indirect", len(set.Indirect))

	return set, nil
}

// classify applies the tier tests in priority order. The term arrives
// already folded.
func (c *Classifier) classify(record *core.PackageRecord, term string) tier {
	name := core.Fold(record.NamePortion(), c.ignoreCase)

	if name == term {
		return tierExact
	}
	if strings.HasPrefix(name, term) {
		return tierDirect
	}
	if strings.Contains(core.Fold(record.Identifier, c.ignoreCase), term) ||
		strings.Contains(core.Fold(record.Version, c.ignoreCase), term) ||
		strings.Contains(core.Fold(record.Description, c.ignoreCase), term) {
		return tierIndirect
	}
	return tierNone
}

// Release releases the worker pool. The classifier should not be used
// after calling Release.
func (c *Classifier) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}
