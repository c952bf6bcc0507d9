package services

import "errors"

// Error classes the handlers map onto HTTP statuses. Services wrap these with
// %w and a descriptive message.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// isCallerError reports whether the error is the caller's fault (validation,
// unknown reference) as opposed to a storage failure. Best-effort paths
// propagate the former and absorb the latter.
func isCallerError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput)
}
