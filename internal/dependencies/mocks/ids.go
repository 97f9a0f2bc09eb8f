package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/hockeytracker/internal/dependencies/ids"
)

// MockIDs is a mock implementation of ids.Generator for testing
type MockIDs struct {
	mu sync.Mutex

	// Queued is returned in order before falling back to sequential ids
	Queued []string
	next   int
	seq    int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// NewID returns the next queued id, or "id-N" once the queue is drained
func (g *MockIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.next < len(g.Queued) {
		id := g.Queued[g.next]
		g.next++
		return id
	}
	g.seq++
	return fmt.Sprintf("id-%d", g.seq)
}

// Queue adds values to the result queue
func (g *MockIDs) Queue(values ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Queued = append(g.Queued, values...)
}

// Reset clears queued results and restarts the sequence
func (g *MockIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Queued = nil
	g.next = 0
	g.seq = 0
}
