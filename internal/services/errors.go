package services

import (
	"errors"
	"net/http"

	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/facades"
)

// ErrStaleResponse is returned to the caller of a request whose response was
// discarded because a newer request, or a session change, superseded it.
// No state is touched when it is returned.
var ErrStaleResponse = errors.New("response superseded by a newer request")

const (
	msgNotAuthenticated = "Not authenticated"
	msgFetchFailed      = "Failed to fetch transactions"
	msgStatusFailed     = "Failed to fetch transaction status"
	msgNotFound         = "Transaction not found"
	msgPaymentFailed    = "Failed to create payment request"
	msgEnterOrderID     = "Please enter a custom order ID"
	msgSubmitInFlight   = "A payment request is already being submitted"
)

func notAuthenticated() error {
	return &apperr.AuthError{Message: msgNotAuthenticated}
}

func transient(err error, fallback string) error {
	return &apperr.TransientNetworkError{Message: serverMessage(err, fallback), Err: err}
}

func serverMessage(err error, fallback string) string {
	var apiErr *facades.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func isNotFound(err error) bool {
	var apiErr *facades.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
