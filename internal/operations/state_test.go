package operations_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Magendanz/TechSmartAggregator/internal/operations"
	"github.com/Magendanz/TechSmartAggregator/internal/operations/testutil"
)

func TestStepStateLifecycle(t *testing.T) {
	s := operations.NewStepState("prune_columns", "Prune Empty Columns")
	assert.Equal(t, operations.StepStatusPending, s.GetStatus())
	assert.Zero(t, s.Duration())

	s.Start()
	assert.Equal(t, operations.StepStatusActive, s.GetStatus())

	s.SetMetadata(operations.MetaColumnsRemoved, 3)
	v, ok := s.GetMetadata(operations.MetaColumnsRemoved)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	time.Sleep(time.Millisecond)
	s.Complete()
	assert.Equal(t, operations.StepStatusCompleted, s.GetStatus())
	assert.Positive(t, s.Duration())
}

func TestStepStateFailAndSkip(t *testing.T) {
	failed := operations.NewStepState("a", "A")
	failed.Start()
	failed.Fail(errors.New("bad"))
	assert.Equal(t, operations.StepStatusFailed, failed.GetStatus())
	assert.EqualError(t, failed.Error, "bad")

	skipped := operations.NewStepState("b", "B")
	skipped.Skip("previous step a failed")
	assert.Equal(t, operations.StepStatusSkipped, skipped.GetStatus())
	assert.Equal(t, "previous step a failed", skipped.Message)
}

func TestOperationStateContextAndTable(t *testing.T) {
	state := testutil.CreateTestOperationState("op-ctx")
	require.NotNil(t, state.Table())
	assert.Equal(t, operations.OperationStatusPending, state.GetStatus())

	_, ok := state.GetContext(operations.ContextKeyPruned)
	assert.False(t, ok)

	state.SetContext(operations.ContextKeyPruned, []string{"1.2 Notes"})
	v, ok := state.GetContext(operations.ContextKeyPruned)
	require.True(t, ok)
	assert.Equal(t, []string{"1.2 Notes"}, v)

	state.Start()
	assert.Equal(t, operations.OperationStatusRunning, state.GetStatus())
	state.Fail(errors.New("stop"))
	assert.Equal(t, operations.OperationStatusFailed, state.GetStatus())
	assert.EqualError(t, state.Error, "stop")
	assert.NotNil(t, state.EndTime)
}

func TestBaseStageValidateRequiresTable(t *testing.T) {
	base := operations.NewBaseStage("x", "X")
	assert.Equal(t, "x", base.ID())
	assert.Equal(t, "X", base.Name())

	err := base.Validate(operations.NewOperationState("op", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no gradebook loaded")

	assert.NoError(t, base.Validate(testutil.CreateTestOperationState("op")))
}

func TestConfigStageTimeouts(t *testing.T) {
	cfg := operations.NewConfig()
	assert.Equal(t, operations.DefaultStageTimeout, cfg.GetStageTimeout("any"))

	cfg.StageTimeout = 5 * time.Second
	cfg.SetStageTimeout("reduce_scores", time.Second)
	assert.Equal(t, time.Second, cfg.GetStageTimeout("reduce_scores"))
	assert.Equal(t, 5*time.Second, cfg.GetStageTimeout("prune_columns"))

	var empty operations.Config
	empty.SetStageTimeout("a", 0)
	assert.Equal(t, operations.DefaultStageTimeout, empty.GetStageTimeout("a"))
}

func TestAggregateStageID(t *testing.T) {
	assert.Equal(t, "aggregate_assignments", operations.AggregateStageID("Assignments"))
	assert.Equal(t, "aggregate_home_work", operations.AggregateStageID(" Home Work "))
}
