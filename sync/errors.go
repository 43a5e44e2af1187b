package sync

import (
	"errors"
	"fmt"
)

// ErrRemoteFetchFailure is returned when Enteractive answers a lookup with success=false.
var ErrRemoteFetchFailure = errors.New("remote fetch failure")

// TransportError reports an Enteractive call that did not return a usable response.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// failures collects the errors of a run so the failure policy can decide what to return.
type failures struct {
	errs []error
}

func (f *failures) add(err error) {
	if err != nil {
		f.errs = append(f.errs, err)
	}
}

func (f *failures) err() error {
	return errors.Join(f.errs...)
}
