package mocks

import (
	"github.com/ramusita/chitgame/internal/dependencies/random"
)

// MockRandom replays queued values. Once a queue runs dry it returns the
// zero value.
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// String returns the next queued result, or empty string if none remaining
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		return ""
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// QueueIdentityShuffle queues the Intn results that make random.Shuffle
// leave n elements in their original order.
func (r *MockRandom) QueueIdentityShuffle(n int) {
	for i := n - 1; i > 0; i-- {
		r.IntnResults = append(r.IntnResults, i)
	}
}

// QueueSwapFirstTwo queues a shuffle of n elements that only swaps the
// first two, leaving the rest in place.
func (r *MockRandom) QueueSwapFirstTwo(n int) {
	for i := n - 1; i > 1; i-- {
		r.IntnResults = append(r.IntnResults, i)
	}
	r.IntnResults = append(r.IntnResults, 0)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.StringResults = nil
	r.stringIndex = 0
}
