package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/tilegame/internal/dependencies/random"
)

// MockRandom is a scripted Random for tests.
// Intn serves queued values first, then falls back to Fallback (or 0).
// String serves queued values first, then "mock-1", "mock-2", ...
type MockRandom struct {
	mu          sync.Mutex
	intnQueue   []int
	stringQueue []string
	stringCalls int

	// Fallback computes Intn once the queue is drained
	Fallback func(n int) int

	// IntnCalls counts every Intn call, queued or not
	IntnCalls int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom that returns 0 once its queue is empty
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// NewIdentityShuffleRandom returns a MockRandom whose Intn(n) is always n-1.
// A Fisher-Yates shuffle driven by it leaves the input order unchanged.
func NewIdentityShuffleRandom() *MockRandom {
	return &MockRandom{Fallback: func(n int) int { return n - 1 }}
}

func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IntnCalls++
	if len(r.intnQueue) > 0 {
		v := r.intnQueue[0]
		r.intnQueue = r.intnQueue[1:]
		return v
	}
	if r.Fallback != nil && n > 0 {
		return r.Fallback(n)
	}
	return 0
}

func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stringQueue) == 0 {
		r.stringCalls++
		return fmt.Sprintf("mock-%d", r.stringCalls)
	}
	v := r.stringQueue[0]
	r.stringQueue = r.stringQueue[1:]
	return v
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnQueue = append(r.intnQueue, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stringQueue = append(r.stringQueue, values...)
}
