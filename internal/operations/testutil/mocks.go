package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/Magendanz/TechSmartAggregator/internal/operations"
)

// MockStage is a configurable mock implementation of the Step interface
type MockStage struct {
	IDValue   string
	NameValue string

	// Configurable functions
	ExecuteFunc  func(ctx context.Context, state *operations.OperationState) error
	ValidateFunc func(state *operations.OperationState) error

	// Call tracking
	mu            sync.Mutex
	ExecuteCalls  int
	ExecuteArgs   []ExecuteCall
	ValidateCalls int
}

// ExecuteCall tracks arguments passed to Execute
type ExecuteCall struct {
	Ctx   context.Context
	State *operations.OperationState
	Time  time.Time
}

// ID returns the step ID
func (m *MockStage) ID() string {
	return m.IDValue
}

// Name returns the step name
func (m *MockStage) Name() string {
	return m.NameValue
}

// Execute runs the mock execute function
func (m *MockStage) Execute(ctx context.Context, state *operations.OperationState) error {
	m.mu.Lock()
	m.ExecuteCalls++
	m.ExecuteArgs = append(m.ExecuteArgs, ExecuteCall{
		Ctx:   ctx,
		State: state,
		Time:  time.Now(),
	})
	m.mu.Unlock()

	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, state)
	}
	return nil
}

// Validate runs the mock validate function
func (m *MockStage) Validate(state *operations.OperationState) error {
	m.mu.Lock()
	m.ValidateCalls++
	m.mu.Unlock()

	if m.ValidateFunc != nil {
		return m.ValidateFunc(state)
	}
	return nil
}

// GetExecuteCalls returns the number of Execute calls
func (m *MockStage) GetExecuteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ExecuteCalls
}

// GetValidateCalls returns the number of Validate calls
func (m *MockStage) GetValidateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ValidateCalls
}

// Recorder collects the order in which mock steps execute
type Recorder struct {
	mu    sync.Mutex
	order []string
}

// Record appends a step ID
func (r *Recorder) Record(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, id)
}

// Order returns the recorded step IDs
func (r *Recorder) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}
