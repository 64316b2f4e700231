// Package response holds the JSON envelopes shared by the HTTP handlers.
package response

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// Response is the envelope for plain acknowledgements and errors.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Accepted acknowledges a started fetch cycle.
type Accepted struct {
	Status string `json:"status"`
	Cycle  uint64 `json:"cycle"`
}

func OK() Response {
	return Response{Status: StatusOK}
}

func Error(msg string) Response {
	return Response{Status: StatusError, Error: msg}
}

func AcceptedCycle(n uint64) Accepted {
	return Accepted{Status: StatusOK, Cycle: n}
}
