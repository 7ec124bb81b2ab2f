package source

import "context"

// Source produces one complete package listing in cache line form.
// Implementations are invoked only during a cache refresh.
type Source interface {
	// Mode reports which listing backend this source queries.
	Mode() Mode

	// ProduceListing runs the backing listing command and returns its
	// full output as tab-delimited cache lines joined by newlines.
	// The returned text is a complete snapshot; partial listings are
	// expressed as errors, never as truncated output.
	ProduceListing(ctx context.Context) (string, error)
}
