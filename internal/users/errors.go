package users

import "errors"

var (
	ErrNotFound  = errors.New("user not found")
	ErrInvalidID = errors.New("invalid user id")
)

// DecodeFailure reports a body that could not be mapped onto a UserList.
type DecodeFailure struct {
	Reason string
	Err    error
}

func (e *DecodeFailure) Error() string {
	return "JSON parsing error: " + e.Reason
}

func (e *DecodeFailure) Unwrap() error {
	return e.Err
}
