package gateway

import "fmt"

// Error is a failed gateway call. Status is the HTTP status when the
// service answered, zero for transport-level failures. Message prefers
// the server-supplied message and falls back to a generic one, so it is
// always safe to show to the user.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("banking service: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("banking service: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorBody is the service's structured error shape.
type errorBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	ErrorText string `json:"error"`
	Message   string `json:"message"`
}
