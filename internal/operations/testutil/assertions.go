package testutil

import (
	"testing"

	"github.com/Magendanz/TechSmartAggregator/internal/operations"
	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

// AssertStepStatus verifies a step has the expected status
func AssertStepStatus(t *testing.T, step *operations.StepState, expected operations.StepStatus) {
	t.Helper()
	if step == nil {
		t.Fatal("step state is nil")
	}
	if got := step.GetStatus(); got != expected {
		t.Errorf("step %s status = %v, want %v", step.ID, got, expected)
	}
}

// AssertOperationStatus verifies an operation has the expected status
func AssertOperationStatus(t *testing.T, p *operations.OperationState, expected operations.OperationStatusValue) {
	t.Helper()
	if p == nil {
		t.Fatal("operation state is nil")
	}
	if got := p.GetStatus(); got != expected {
		t.Errorf("operation status = %v, want %v", got, expected)
	}
}

// AssertStageCompleted verifies a step completed successfully
func AssertStageCompleted(t *testing.T, p *operations.OperationState, stageID string) {
	t.Helper()
	step := p.GetStage(stageID)
	if step == nil {
		t.Fatalf("step %s not found", stageID)
	}
	AssertStepStatus(t, step, operations.StepStatusCompleted)
}

// AssertStageFailed verifies a step failed with an error
func AssertStageFailed(t *testing.T, p *operations.OperationState, stageID string) {
	t.Helper()
	step := p.GetStage(stageID)
	if step == nil {
		t.Fatalf("step %s not found", stageID)
	}
	AssertStepStatus(t, step, operations.StepStatusFailed)
	if step.Error == nil {
		t.Errorf("step %s has no error", stageID)
	}
}

// AssertStageSkipped verifies a step was skipped
func AssertStageSkipped(t *testing.T, p *operations.OperationState, stageID string) {
	t.Helper()
	step := p.GetStage(stageID)
	if step == nil {
		t.Fatalf("step %s not found", stageID)
	}
	AssertStepStatus(t, step, operations.StepStatusSkipped)
}

// AssertColumnNames verifies the table's column names in order
func AssertColumnNames(t *testing.T, table *domain.Table, expected ...string) {
	t.Helper()
	got := table.ColumnNames()
	if len(got) != len(expected) {
		t.Fatalf("columns = %q, want %q", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], expected[i])
		}
	}
}

// AssertStudentCells verifies the student rows of a named column
func AssertStudentCells(t *testing.T, table *domain.Table, column string, expected ...string) {
	t.Helper()
	col, ok := table.ColumnByName(column)
	if !ok {
		t.Fatalf("column %q not found in %q", column, table.ColumnNames())
	}
	got := col.Values[domain.FirstDataRow:]
	if len(got) != len(expected) {
		t.Fatalf("column %q cells = %q, want %q", column, got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("column %q row %d = %q, want %q", column, domain.FirstDataRow+i, got[i], expected[i])
		}
	}
}
