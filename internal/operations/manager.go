package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Manager orchestrates operation execution
type Manager struct {
	registry *Registry
	config   *Config
	logger   *slog.Logger
	tracer   *OperationTracer
}

// NewManager creates a new operation manager with dependency injection
func NewManager(registry *Registry, config *Config, logger *slog.Logger) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	if config == nil {
		config = NewConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		registry: registry,
		config:   config,
		logger:   logger,
	}
}

// RegisterStage registers a Step with the operation
func (m *Manager) RegisterStage(step Step) error {
	return m.registry.Register(step)
}

// SetTracer attaches span and metric instrumentation
func (m *Manager) SetTracer(tracer *OperationTracer) {
	m.tracer = tracer
}

// GetRegistry returns the registry for accessing registered stages
func (m *Manager) GetRegistry() *Registry {
	return m.registry
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// Execute runs every registered step, in order, against the state's table.
// The first failing step stops the run and the remaining steps are skipped.
func (m *Manager) Execute(ctx context.Context, state *OperationState) (*OperationResponse, error) {
	if state == nil {
		return nil, NewFatalError("operation state is nil", nil)
	}

	steps := m.registry.List()
	for _, step := range steps {
		state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	ctx, span := m.tracer.TraceOperationExecution(ctx, state)
	defer span.End()

	m.logOperationStart(ctx, state, len(steps))
	state.Start()

	err := m.executeSequential(ctx, state, steps)

	switch {
	case err == nil:
		state.Complete()
	case GetErrorType(err) == ErrorTypeCancellation:
		state.Cancel(err)
	default:
		state.Fail(err)
	}

	if err != nil {
		m.logOperationError(ctx, state.ID, err)
	}
	m.logOperationComplete(ctx, state.ID, state.Duration(), string(state.GetStatus()))
	m.tracer.RecordOperationCompletion(ctx, span, state, err)

	return m.createResponse(state), err
}

// executeSequential executes steps one by one
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) error {
	for i, step := range steps {
		select {
		case <-ctx.Done():
			m.logger.WarnContext(ctx, "operation_cancelled",
				slog.String("operation_id", state.ID),
				slog.String("step", step.ID()))
			m.skipRemaining(state, steps[i:], "operation cancelled")
			return NewCancellationError(step.ID(), ctx.Err())
		default:
		}

		m.logger.DebugContext(ctx, "executing_stage",
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.Int("stage_number", i+1),
			slog.Int("total_stages", len(steps)))

		if err := m.executeStage(ctx, state, step); err != nil {
			m.logStageError(ctx, state.ID, step.ID(), err)
			m.skipRemaining(state, steps[i+1:], fmt.Sprintf("previous step %s failed", step.ID()))
			return err
		}
	}
	return nil
}

// executeStage executes a single Step under its timeout
func (m *Manager) executeStage(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStage(step.ID())
	if stepState == nil {
		return NewFatalError("step state not found", nil)
	}

	if err := step.Validate(state); err != nil {
		m.logger.WarnContext(ctx, "validation_failed",
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.String("error", err.Error()))
		verr := NewValidationError(step.ID(), err.Error())
		stepState.Fail(verr)
		return verr
	}

	timeout := m.config.GetStageTimeout(step.ID())
	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stageCtx, span := m.tracer.TraceStageExecution(stageCtx, state.ID, step.ID())
	defer span.End()

	m.logStageStart(ctx, state.ID, step.ID())
	stepState.Start()
	startTime := time.Now()
	err := step.Execute(stageCtx, state)
	duration := time.Since(startTime)

	if err == nil && errors.Is(stageCtx.Err(), context.DeadlineExceeded) {
		err = NewTimeoutError(step.ID(), timeout.String())
	}

	if err != nil {
		switch {
		case ctx.Err() != nil:
			err = NewCancellationError(step.ID(), err)
		case errors.Is(err, context.DeadlineExceeded):
			err = NewTimeoutError(step.ID(), timeout.String())
		default:
			err = WrapError(err, step.ID(), "step execution failed")
		}
		stepState.Fail(err)
		m.tracer.RecordStageCompletion(stageCtx, span, stepState, duration, err)
		return err
	}

	stepState.Complete()
	m.logStageComplete(ctx, state.ID, step.ID(), duration, stepState)
	m.tracer.RecordStageCompletion(stageCtx, span, stepState, duration, nil)
	return nil
}

// skipRemaining marks steps that will not run
func (m *Manager) skipRemaining(state *OperationState, steps []Step, reason string) {
	for _, step := range steps {
		if s := state.GetStage(step.ID()); s != nil && s.GetStatus() == StepStatusPending {
			s.Skip(reason)
		}
	}
}

// createResponse creates an operation response from state
func (m *Manager) createResponse(state *OperationState) *OperationResponse {
	resp := &OperationResponse{
		ID:       state.ID,
		Status:   state.GetStatus(),
		Duration: state.Duration(),
		Steps:    state.summaries(),
	}

	if state.Error != nil {
		resp.Error = state.Error.Error()
	}

	return resp
}
