// Package apierr carries an HTTP status and a stable machine-readable code
// alongside a wrapped error. Services attach the status where they have the
// context to choose one; handlers only translate the error into a response.
package apierr

import "fmt"

// Error pairs a wrapped cause with the status and code the handler should
// respond with. It unwraps to the cause, so errors.Is checks against
// sentinel errors keep working.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	case e.Status != 0:
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with the response status and code to surface it under.
func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}
