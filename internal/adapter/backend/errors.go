package backend

import "errors"

// RequestFailedError is the single failure channel for every gateway call.
// Message carries the backend-provided detail when the backend answered with
// a non-200 status, or the transport fault text otherwise; Op identifies the
// operation so the rendered text reads "Create agent error: name required".
type RequestFailedError struct {
	Op      string
	Message string
	Err     error // underlying transport/decode fault, nil for backend-reported failures
}

func (e *RequestFailedError) Error() string {
	return e.Op + " error: " + e.Message
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// IsRequestFailed reports whether err originated from the backend gateway.
func IsRequestFailed(err error) bool {
	var rf *RequestFailedError
	return errors.As(err, &rf)
}
