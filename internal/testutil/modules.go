package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/recoseq/internal/eventstore"
	"github.com/specialistvlad/recoseq/internal/handlers"
)

// SimpleModule is a test helper for easily creating a mock module that
// registers a single handler.
type SimpleModule struct {
	TypeName string
	Handler  *handlers.Handler
}

// Register implements the handlers.Module interface.
func (m *SimpleModule) Register(r *handlers.Handlers) {
	r.Register(m.TypeName, m.Handler)
}

// NoOpModule registers a "NoOp" type that publishes nil for each declared
// product and reads nothing.
type NoOpModule struct{}

// Register implements the handlers.Module interface.
func (m *NoOpModule) Register(r *handlers.Handlers) {
	r.Register("NoOp", &handlers.Handler{Fn: PublishAll(nil)})
}

// PublishAll returns a handler function that publishes value to every
// declared instance.
func PublishAll(value any) handlers.Func {
	return func(_ context.Context, view *eventstore.View, _ any) error {
		for _, tag := range view.Unit().Produces() {
			if err := view.Put(tag.Instance, value); err != nil {
				return err
			}
		}
		return nil
	}
}

// ExecutionRecord holds the start and end times for a single unit execution.
type ExecutionRecord struct {
	Start time.Time
	End   time.Time
}

// MockSleeperModule registers a "Sleeper" type that sleeps, records when
// each unit ran in each iteration and publishes its products.
type MockSleeperModule struct {
	sleepDuration time.Duration

	mu             sync.Mutex
	executionTimes map[string][]ExecutionRecord
}

// NewMockSleeperModule creates a new sleeper module for testing.
func NewMockSleeperModule(sleep time.Duration) *MockSleeperModule {
	return &MockSleeperModule{
		sleepDuration:  sleep,
		executionTimes: make(map[string][]ExecutionRecord),
	}
}

// Register implements the handlers.Module interface.
func (m *MockSleeperModule) Register(r *handlers.Handlers) {
	publish := PublishAll(true)
	r.Register("Sleeper", &handlers.Handler{
		Fn: func(ctx context.Context, view *eventstore.View, params any) error {
			start := time.Now()
			time.Sleep(m.sleepDuration)
			end := time.Now()

			m.mu.Lock()
			name := view.Unit().Name()
			m.executionTimes[name] = append(m.executionTimes[name], ExecutionRecord{Start: start, End: end})
			m.mu.Unlock()

			return publish(ctx, view, params)
		},
	})
}

// Executions returns the records of a unit, one per iteration it ran in.
func (m *MockSleeperModule) Executions(unitName string) []ExecutionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutionRecord(nil), m.executionTimes[unitName]...)
}
