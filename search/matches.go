package search

import "github.com/poiesic/nps/core"

// MatchSet holds the outcome of one classification run, partitioned
// into three disjoint tiers. Every record appears in at most one tier.
type MatchSet struct {
	Exact    []core.PackageRecord
	Direct   []core.PackageRecord
	Indirect []core.PackageRecord
}

// Total returns the number of matched records across all tiers.
func (m *MatchSet) Total() int {
	return len(m.Exact) + len(m.Direct) + len(m.Indirect)
}

// Empty reports whether no record matched.
func (m *MatchSet) Empty() bool {
	return m.Total() == 0
}
