package factory

import (
	"time"

	"github.com/openfest/gatekeeper/internal/dependencies/mocks"
	"github.com/openfest/gatekeeper/internal/services/auth"
	"github.com/openfest/gatekeeper/internal/storage/memory"
	"github.com/openfest/gatekeeper/internal/testutil"
)

// TestApp wraps App with mocked dependencies for testing
type TestApp struct {
	*App

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App backed by in-memory storage with mocked
// clock and random sources, suitable for deterministic tests.
func NewTestApp() *TestApp {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()

	app := newWithDependencies(store, clk, rnd, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  clk,
		MockRandom: rnd,
	}
}
