package utils

import (
	"sync"
	"time"
)

// Gate enforces a minimum interval between successive calls. The
// geocoder uses it to respect the usage policy of the upstream service.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewGate creates a Gate with the given minimum interval.
func NewGate(interval time.Duration) *Gate {
	return &Gate{interval: interval}
}

// Wait blocks until at least the configured interval has passed since
// the previous call, then records the current time.
func (g *Gate) Wait() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() {
		if elapsed := time.Since(g.last); elapsed < g.interval {
			time.Sleep(g.interval - elapsed)
		}
	}
	g.last = time.Now()
}

// IDSet is a thread-safe set of listing ids seen during the current run.
type IDSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewIDSet creates an empty IDSet.
func NewIDSet() *IDSet {
	return &IDSet{seen: make(map[string]struct{})}
}

// Add returns true if the id was newly added, false if already present.
func (s *IDSet) Add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[id]; exists {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}

// Contains returns true if the id has already been seen this run.
func (s *IDSet) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[id]
	return exists
}

// Size returns the number of unique ids tracked.
func (s *IDSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
