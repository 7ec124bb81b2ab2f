package nps

import (
	"time"

	"github.com/poiesic/nps/source"
)

// Notifier provides hooks to observe the progress of a run.
// Implement this interface to surface refresh and cache events to the
// user; logging happens independently of it.
type Notifier interface {
	RefreshStarted(mode source.Mode)
	RefreshDone(count int, path string)
	CacheStale(age time.Duration)
	Advice(message string)
}

// noopNotifier is a no-op implementation of Notifier
type noopNotifier struct{}

var _ Notifier = (*noopNotifier)(nil)

func (n *noopNotifier) RefreshStarted(_ source.Mode) {}
func (n *noopNotifier) RefreshDone(_ int, _ string)  {}
func (n *noopNotifier) CacheStale(_ time.Duration)   {}
func (n *noopNotifier) Advice(_ string)              {}
