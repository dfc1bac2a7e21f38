package google

import (
	"errors"

	"google.golang.org/api/googleapi"
)

// apiError adapts a googleapi.Error to the retry package's status-code
// interface so throttling and transient server errors are retried.
type apiError struct {
	err *googleapi.Error
}

func (e *apiError) Error() string {
	return e.err.Error()
}

func (e *apiError) StatusCode() int {
	return e.err.Code
}

func (e *apiError) Unwrap() error {
	return e.err
}

func wrapAPIError(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &apiError{err: gerr}
	}
	return err
}
