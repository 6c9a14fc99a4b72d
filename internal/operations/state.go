package operations

import (
	"sync"
	"time"

	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

// OperationStatusValue represents the overall operation status enum
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
	OperationStatusCancelled OperationStatusValue = "cancelled"
)

// OperationState represents the complete state of an aggregation run
type OperationState struct {
	mu sync.RWMutex

	ID        string               `json:"id"`
	Source    string               `json:"source"`
	Status    OperationStatusValue `json:"status"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`

	// Step states, with their execution order
	Steps map[string]*StepState `json:"steps"`
	order []string

	// Context passes reports between steps
	Context map[string]interface{} `json:"context"`

	Error error `json:"error,omitempty"`

	// table is the gradebook the steps mutate in place
	table *domain.Table
}

// NewOperationState creates a new operation state for a loaded gradebook
func NewOperationState(id string, table *domain.Table) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
		Context:   make(map[string]interface{}),
		table:     table,
	}
}

// Table returns the gradebook being transformed
func (p *OperationState) Table() *domain.Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// Cancel marks the operation as cancelled
func (p *OperationState) Cancel(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCancelled
	p.Error = err
}

// GetStatus returns the current status
func (p *OperationState) GetStatus() OperationStatusValue {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Status
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stageID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Steps[stageID]
}

// SetStage updates the state of a specific Step
func (p *OperationState) SetStage(stageID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.Steps[stageID]; !exists {
		p.order = append(p.order, stageID)
	}
	p.Steps[stageID] = state
}

// GetContext retrieves a value from the operation context
func (p *OperationState) GetContext(key string) (interface{}, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	val, ok := p.Context[key]
	return val, ok
}

// SetContext sets a value in the operation context
func (p *OperationState) SetContext(key string, value interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Context[key] = value
}

// Duration returns the duration of the operation execution
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}

// GetFailedStages returns all failed steps in execution order
func (p *OperationState) GetFailedStages() []*StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var failed []*StepState
	for _, id := range p.order {
		if step := p.Steps[id]; step.GetStatus() == StepStatusFailed {
			failed = append(failed, step)
		}
	}
	return failed
}

// HasFailures returns true if any Step has failed
func (p *OperationState) HasFailures() bool {
	return len(p.GetFailedStages()) > 0
}

// summaries returns step snapshots in execution order
func (p *OperationState) summaries() []StepSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]StepSummary, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.Steps[id].snapshot())
	}
	return out
}
