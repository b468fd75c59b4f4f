// Package upstream holds the errors shared by every client of the HR API.
package upstream

import "errors"

var (
	// ErrUnavailable marks transport failures, 5xx responses and an open breaker
	ErrUnavailable = errors.New("HR API unavailable")
	// ErrRequestFailed marks other non-2xx responses to reads
	ErrRequestFailed = errors.New("HR API request failed")
	// ErrMalformedResponse marks 2xx bodies that could not be decoded
	ErrMalformedResponse = errors.New("HR API returned a malformed response")
)

// MessageError is an upstream answer whose message is safe to show to users.
type MessageError interface {
	error
	UserMessage() string
}

// UserMessage returns the upstream explanation carried by err, or err's own
// text when there is none.
func UserMessage(err error) string {
	var msgErr MessageError
	if errors.As(err, &msgErr) {
		return msgErr.UserMessage()
	}
	return err.Error()
}
