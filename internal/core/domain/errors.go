package domain

import "errors"

var (
	// ErrUnreachable marks a transport-level failure calling an external
	// service.
	ErrUnreachable = errors.New("external service unreachable")
	// ErrInvalidResponse marks a response that arrived but failed shape
	// validation or carried an explicit error field.
	ErrInvalidResponse = errors.New("invalid response from external service")
	// ErrAlreadyClaimed is returned by the collectible store when the
	// (owner, item) pair already exists.
	ErrAlreadyClaimed = errors.New("item already claimed")
	// ErrNotFound covers expired pagination state, a missing pending roll
	// and a character lookup with no match.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyReplied is returned when a second terminal reply is
	// attempted on the same interaction. The reply is not sent.
	ErrAlreadyReplied = errors.New("interaction already has a terminal reply")
)

// UpstreamError carries an error message returned by an external service
// that is meant to be shown to the user verbatim.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return ErrInvalidResponse
}
