package pipeline

import (
	"errors"
	"strconv"
)

var ErrClosed = errors.New("pipeline closed")

// StatusFailure is a completed response that cannot carry users: a non-2xx
// status or an empty body.
type StatusFailure struct {
	StatusCode int
	Status     string
}

func (e *StatusFailure) Error() string {
	if e.Status == "" {
		return "Error: " + strconv.Itoa(e.StatusCode)
	}
	return "Error: " + e.Status
}
