package operations_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Magendanz/TechSmartAggregator/internal/operations"
)

func TestOperationErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      *operations.OperationError
		wantType operations.ErrorType
		contains []string
	}{
		{
			name:     "validation",
			err:      operations.NewValidationError("prune_columns", "no gradebook loaded"),
			wantType: operations.ErrorTypeValidation,
			contains: []string{"[validation]", "prune_columns", "no gradebook loaded"},
		},
		{
			name:     "execution",
			err:      operations.NewExecutionError("reduce_scores", errors.New("bad cell")),
			wantType: operations.ErrorTypeExecution,
			contains: []string{"[execution]", "reduce_scores", "bad cell"},
		},
		{
			name:     "timeout",
			err:      operations.NewTimeoutError("aggregate_assignments", "1m0s"),
			wantType: operations.ErrorTypeTimeout,
			contains: []string{"[timeout]", "1m0s"},
		},
		{
			name:     "cancellation",
			err:      operations.NewCancellationError("drop_columns", context.Canceled),
			wantType: operations.ErrorTypeCancellation,
			contains: []string{"[cancellation]", "context canceled"},
		},
		{
			name:     "fatal without step",
			err:      operations.NewFatalError("operation state is nil", nil),
			wantType: operations.ErrorTypeFatal,
			contains: []string{"[fatal] operation state is nil"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantType, operations.GetErrorType(tt.err))
			for _, s := range tt.contains {
				assert.Contains(t, tt.err.Error(), s)
			}
		})
	}
}

func TestOperationErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("outer: %w", operations.NewExecutionError("save", cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, operations.ErrorTypeExecution, operations.GetErrorType(err))

	var nilErr *operations.OperationError
	assert.Nil(t, nilErr.Unwrap())
	assert.Equal(t, "unknown operation error", nilErr.Error())
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, operations.ErrorType(""), operations.GetErrorType(nil))
	assert.Equal(t, operations.ErrorTypeExecution, operations.GetErrorType(errors.New("plain")))
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, operations.WrapError(nil, "step", "msg"))

	plain := errors.New("plain")
	wrapped := operations.WrapError(plain, "normalize_headers", "step execution failed")
	assert.Equal(t, "normalize_headers", wrapped.Step)
	assert.ErrorIs(t, wrapped, plain)

	timeout := operations.NewTimeoutError("", "1s")
	rewrapped := operations.WrapError(timeout, "prune_columns", "")
	assert.Same(t, timeout, rewrapped)
	assert.Equal(t, "prune_columns", rewrapped.Step)
	assert.Equal(t, operations.ErrorTypeTimeout, rewrapped.Type)
}
