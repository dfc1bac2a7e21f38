package meetflow

import (
	"errors"
	"fmt"
)

// ErrMalformedModelOutput indicates the language model returned data that
// does not match the expected shape. It is treated like any other service
// failure: the step fails and the run aborts.
var ErrMalformedModelOutput = errors.New("malformed model output")

// ErrEmptyResolution indicates a resume carried no resolution text. The
// resume is rejected before any state is written.
var ErrEmptyResolution = errors.New("resolution text is empty")

// AuthError indicates that collaborator handle acquisition failed. It is
// fatal: the run aborts before any service-calling step executes.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ServiceError indicates a mail, calendar, or model call failed. It is
// fatal to the current step; the session is left failed with partial state
// retained for inspection.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Service, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// StepError wraps a failure with the name of the step it occurred in. The
// engine attaches this at the step boundary before surfacing the error to
// the stream; steps themselves never hide a collaborator failure.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// InvalidStateError indicates a resume request could not be honored: the
// session is not waiting for input, does not exist, or the resume carried
// no resolution text. No state is mutated. Err carries the underlying
// cause when there is one.
type InvalidStateError struct {
	SessionID string
	Status    string
	Err       error
}

func (e *InvalidStateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session %q: %v", e.SessionID, e.Err)
	}
	return fmt.Sprintf("session %q is not waiting for input (status %q)", e.SessionID, e.Status)
}

func (e *InvalidStateError) Unwrap() error {
	return e.Err
}
