// Package apperr holds the error taxonomy surfaced to the console layer.
package apperr

import "errors"

// ValidationError is local input rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// AuthError is a login or registration rejection, or a call made without a session.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NotFoundError is a 404-class reply from a lookup.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// TransientNetworkError is any other failed collaborator request.
type TransientNetworkError struct {
	Message string
	Err     error
}

func (e *TransientNetworkError) Error() string { return e.Message }

func (e *TransientNetworkError) Unwrap() error { return e.Err }

// Message returns the human readable message carried by err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var (
		ve *ValidationError
		ae *AuthError
		ne *NotFoundError
		te *TransientNetworkError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ae):
		return ae.Message
	case errors.As(err, &ne):
		return ne.Message
	case errors.As(err, &te):
		return te.Message
	default:
		return err.Error()
	}
}
