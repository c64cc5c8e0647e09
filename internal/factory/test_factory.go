package factory

import (
	"time"

	"github.com/ramusita/chitgame/internal/dependencies/mocks"
	"github.com/ramusita/chitgame/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App on memory storage with a mocked clock and
// random source
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(Config{})
}

// NewTestAppWithConfig is NewTestApp with explicit settings
func NewTestAppWithConfig(cfg Config) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	return &TestApp{
		App:        newWithDependencies(memory.New(), mockClock, mockRandom, cfg),
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
