package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrSteps indicates a step count below 1.
	ErrSteps = errors.New("schedule: step count must be at least 1")

	// ErrStepRange indicates a step index outside [0, N].
	ErrStepRange = errors.New("schedule: step index out of range")
)

// StepError wraps an error with the step it occurred at.
type StepError struct {
	Step    int
	Total   int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d/%d: %v", e.Step, e.Total, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
