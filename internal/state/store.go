package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/backdeck/backdeck/internal/backdrop"
)

// Snapshot represents the latest dashboard data available to the UI.
type Snapshot struct {
	Status              []backdrop.StatusItem
	HasStatus           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // number of consecutive poll failures
}

// IsOffline returns true when the site has been unreachable for multiple
// polls in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Problems returns the status rows that need attention.
func (s Snapshot) Problems() []backdrop.StatusItem {
	var problems []backdrop.StatusItem
	for _, item := range s.Status {
		if item.Severity == "warning" || item.Severity == "error" {
			problems = append(problems, item)
		}
	}
	return problems
}

// Store coordinates concurrent updates to the snapshot. The poller is the
// single writer; the UI reads at its own cadence.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) Update(status []backdrop.StatusItem, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Status = cloneStatus(status)
	s.snapshot.HasStatus = status != nil
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Reset drops all data, for use at logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Status = cloneStatus(s.snapshot.Status)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneStatus(items []backdrop.StatusItem) []backdrop.StatusItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]backdrop.StatusItem, len(items))
	copy(dup, items)
	return dup
}
