package session

import (
	"errors"
	"fmt"
)

var (
	ErrSegmentCount  = errors.New("cookie must consist of a payload, timestamp and signature segment")
	ErrBadTimestamp  = errors.New("timestamp segment is not a packed integer")
	ErrPayloadNotUTF = errors.New("payload is not valid UTF-8 text")
)

// DecodeError reports that a cookie could not be parsed: bad base64,
// bad compression, bad UTF-8, bad JSON or a wrong segment count. It is
// always recoverable; Verify converts it into a plain false result.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode cookie, are you sure this was a Flask session cookie? %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SigningError reports that an input had an invalid type for a signing
// or verification operation, most commonly a secret that is neither a
// string nor a byte slice.
type SigningError struct {
	Value interface{}
	Err   error
}

func (e *SigningError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot serialize session value of type %T: %v", e.Value, e.Err)
	}
	return fmt.Sprintf(
		"secret must be a string or byte slice, got %T (%v); "+
			"either quote the value or use the --no-literal-eval argument",
		e.Value, e.Value)
}

func (e *SigningError) Unwrap() error { return e.Err }
