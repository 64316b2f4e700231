package randomuser

import (
	"context"
	"errors"
	"net"
)

var (
	ErrReadTimeout = errors.New("read timeout")
	ErrBaseURL     = errors.New("invalid base url")
)

// NetworkFailure is returned when no complete response could be obtained.
type NetworkFailure struct {
	Op      string
	URL     string
	Timeout bool
	Err     error
}

func (e *NetworkFailure) Error() string {
	if e.Timeout {
		return e.Op + " " + e.URL + ": request timeout: " + e.Err.Error()
	}
	return e.Op + " " + e.URL + ": " + e.Err.Error()
}

func (e *NetworkFailure) Unwrap() error {
	return e.Err
}

func isTimeout(err error) bool {
	if errors.Is(err, ErrReadTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
