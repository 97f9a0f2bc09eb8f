package factory

import (
	"time"

	"github.com/mcoot/hockeytracker/internal/dependencies/mocks"
	"github.com/mcoot/hockeytracker/internal/storage/memory"
	"github.com/mcoot/hockeytracker/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
	Memory    *memory.Storage
}

// NewTestApp creates an App on memory storage with a fixed clock and
// scripted identifiers
func NewTestApp() *TestApp {
	backend := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()

	app := newWithDependencies(backend, mockClock, mockIDs, 0, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
		Memory:    backend,
	}
}
