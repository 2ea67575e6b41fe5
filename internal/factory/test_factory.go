package factory

import (
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/blogadmin/internal/dependencies/mocks"
	"github.com/mcoot/blogadmin/internal/services/auth"
	"github.com/mcoot/blogadmin/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Direct store access for fixtures
	MemoryStorage  *memory.Storage
	MemorySessions *memory.SessionStore

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App on memory stores with a mocked clock at
// 2024-01-01 12:00 UTC, days counted in UTC and the cheapest bcrypt cost.
func NewTestApp() *TestApp {
	store := memory.New()
	sessions := memory.NewSessionStore()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.DefaultConfig()
	authCfg.BcryptCost = bcrypt.MinCost

	app := newWithDependencies(dependencies{
		store:    store,
		sessions: sessions,
		clock:    mockClock,
		random:   mockRandom,
		location: time.UTC,
		authCfg:  authCfg,
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})

	return &TestApp{
		App:            app,
		MemoryStorage:  store,
		MemorySessions: sessions,
		MockClock:      mockClock,
		MockRandom:     mockRandom,
	}
}
