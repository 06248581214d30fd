package events

import "errors"

var (
	// ErrUnknownType is returned when building an event of an unregistered type
	ErrUnknownType = errors.New("unknown event type")

	// ErrNoSink is returned when delivering without a sink configured
	ErrNoSink = errors.New("no event sink configured")
)

// PermanentError marks a delivery failure that retrying cannot fix, such as a payload
// the consumer rejects outright. The relay parks such events instead of retrying them.
type PermanentError struct {
	Err error
}

// Error implements the error interface.
func (e *PermanentError) Error() string {
	return "permanent delivery failure: " + e.Err.Error()
}

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so IsPermanent reports true for it
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err, or anything it wraps, is a PermanentError
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}
