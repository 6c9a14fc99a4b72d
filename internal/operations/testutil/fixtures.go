package testutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Magendanz/TechSmartAggregator/internal/operations"
	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

// Column builds a gradebook column from its four metadata rows followed by
// student cells.
func Column(name, lessonTitle, assignment, category, possible string, students ...string) *domain.Column {
	values := []string{lessonTitle, assignment, category, possible}
	values = append(values, students...)
	return &domain.Column{Name: name, Values: values}
}

// SampleGradebook returns a small export with five students: three
// administrative columns, two lesson 1.1 assignments, a lesson 1.1 check and
// an empty lesson 1.2 column.
func SampleGradebook() *domain.Table {
	return domain.NewTable(
		Column("First Name", "", "", "", "", "Ada", "Bob", "Cy", "Di", "Ed"),
		Column("Last Name", "", "", "", "", "Lovelace", "Ross", "Young", "Prince", "Wood"),
		Column("Email", "", "", "", "", "ada@x.org", "bob@x.org", "cy@x.org", "di@x.org", "ed@x.org"),
		Column("Unit 1: Basics", "Lesson 1: Hello", "Warm Up A", "Warm Up", "",
			"5/5 ", "0/5 ", "Turned In", "", "1/5 "),
		Column("Column 5", "", "Practice", "Classwork", "",
			"Turned In", "Syntax error 1/5 ", "", "3/5 ", ""),
		Column("Column 6", "", "Check", "Lesson Check", "",
			"4/5 extra", "In progress", "2/5 ", "", "5/5 "),
		Column("Column 7", "Lesson 2: Loops", "Notes", "Lesson Notes", "",
			"", "", "", "", ""),
	)
}

// CreateTestOperationState creates an operation state over the sample gradebook
func CreateTestOperationState(id string) *operations.OperationState {
	state := operations.NewOperationState(id, SampleGradebook())
	state.Source = "sample.csv"
	return state
}

// CreateTestConfig creates a test configuration with short step timeouts
func CreateTestConfig() *operations.Config {
	cfg := operations.NewConfig()
	cfg.StageTimeout = time.Second
	return cfg
}

// CreateTestRegistry creates a registry with three successful steps
func CreateTestRegistry(recorder *Recorder) *operations.Registry {
	registry := operations.NewRegistry()
	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("stage%d", i)
		if err := registry.Register(CreateSuccessfulStage(id, "step "+id, recorder)); err != nil {
			panic(err)
		}
	}
	return registry
}

// CreateSuccessfulStage creates a step that always succeeds
func CreateSuccessfulStage(id, name string, recorder *Recorder) *MockStage {
	return &MockStage{
		IDValue:   id,
		NameValue: name,
		ExecuteFunc: func(ctx context.Context, state *operations.OperationState) error {
			if recorder != nil {
				recorder.Record(id)
			}
			if s := state.GetStage(id); s != nil {
				s.SetMetadata(operations.MetaColumnsRemoved, 1)
				s.SetMessage("done")
			}
			return nil
		},
	}
}

// CreateFailingStage creates a step that always fails
func CreateFailingStage(id, name string, err error) *MockStage {
	if err == nil {
		err = errors.New("step failed")
	}
	return &MockStage{
		IDValue:   id,
		NameValue: name,
		ExecuteFunc: func(ctx context.Context, state *operations.OperationState) error {
			return err
		},
	}
}

// CreateSlowStage creates a step that waits for d or for its context
func CreateSlowStage(id, name string, d time.Duration) *MockStage {
	return &MockStage{
		IDValue:   id,
		NameValue: name,
		ExecuteFunc: func(ctx context.Context, state *operations.OperationState) error {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			}
		},
	}
}

// CreateCancellingStage creates a step that cancels the run and succeeds
func CreateCancellingStage(id, name string, cancel context.CancelFunc) *MockStage {
	return &MockStage{
		IDValue:   id,
		NameValue: name,
		ExecuteFunc: func(ctx context.Context, state *operations.OperationState) error {
			cancel()
			return nil
		},
	}
}
