package cracker

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceClosed is returned by a Source whose underlying
	// resource was torn down while a crack run was still pulling from
	// it. The cracker treats it as a clean cancellation, not a fault:
	// it is the expected side effect of external interruption racing
	// an in-progress chunk pull.
	ErrSourceClosed = errors.New("candidate source closed")

	// ErrCancelled is the outcome of a crack run that was aborted,
	// either through Cancel or through source teardown, before a
	// match or exhaustion.
	ErrCancelled = errors.New("crack run cancelled")
)

// Fault wraps the first unexpected failure raised inside a worker.
// Subsequent failures from workers that are already cancelling are
// suppressed; only one Fault ever reaches the caller.
type Fault struct {
	Err   error
	Stack []byte
}

func (f *Fault) Error() string {
	return fmt.Sprintf("unhandled error in cracker worker: %v", f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }
