package job

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition indicates a status change the state machine
// does not allow.
var ErrInvalidTransition = errors.New("job: invalid status transition")

// TransitionError reports a rejected status transition.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("job: invalid status transition %s -> %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
