package service

import "errors"

// ErrNotFound covers both a missing post and an authorization denial;
// callers must not be able to tell the two apart, so a private post
// never reveals its existence to a non-owner.
var ErrNotFound = errors.New("post not found")

// ValidationError is an expected control-flow failure; handlers map it
// to 422 and it is never logged as an error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
