package router

import (
	"fmt"
	"sync"
	"time"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

// ErrInvalidPercent rejects split values outside [0,100]. This is the one
// error the routing layer propagates synchronously: an out-of-range split is
// an operator mistake, and clamping it silently would hide the typo.
var ErrInvalidPercent = fmt.Errorf("split percent must be in [0,100]")

// TrafficSplitTable maps intents to the percentage of eligible traffic the
// student model may serve. Unknown intents read as 0 (fail closed). State is
// process-local; operators reconfigure after a restart, either by hand or via
// the initial splits in config.
type TrafficSplitTable struct {
	mu          sync.RWMutex
	splits      map[models.Intent]int
	lastUpdated time.Time
}

func NewTrafficSplitTable() *TrafficSplitTable {
	return &TrafficSplitTable{
		splits: make(map[models.Intent]int),
	}
}

// Split returns the configured percentage for an intent, 0 if never set.
func (t *TrafficSplitTable) Split(intent models.Intent) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.splits[intent]
}

// SetSplit updates the percentage for an intent. Values outside [0,100]
// return ErrInvalidPercent and leave the table untouched.
func (t *TrafficSplitTable) SetSplit(intent models.Intent, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: got %d for intent %s", ErrInvalidPercent, percent, intent)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.splits[intent] = percent
	t.lastUpdated = time.Now()
	return nil
}

// Snapshot returns a copy of the current table for display/auditing.
func (t *TrafficSplitTable) Snapshot() models.SplitSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	splits := make(map[string]int, len(t.splits))
	for intent, percent := range t.splits {
		splits[intent.String()] = percent
	}

	return models.SplitSnapshot{
		Splits:      splits,
		LastUpdated: t.lastUpdated,
	}
}

// LastUpdated reports when the table was last mutated.
func (t *TrafficSplitTable) LastUpdated() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastUpdated
}
