package transport

import (
	"encoding/json"

	"github.com/taskdeck/backend/domain"
)

// Response is the uniform API payload: success flag plus either a message
// or an error string, and optionally the current user record.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// OK returns a success response carrying a human-readable message.
func OK(message string) Response {
	return Response{
		Success: true,
		Message: message,
	}
}

// Fail returns a failure response with the given error string.
func Fail(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// WithUser returns a success response carrying the user record.
func WithUser(user *domain.User) Response {
	return Response{
		Success: true,
		User:    user,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (r Response) String() string {
	out, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(out)
}
