package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/services"
)

//go:generate mockgen -source=payment.go -destination=payment_mock.go -package=handlers

// PaymentForm is the create-payment form flow.
type PaymentForm interface {
	Update(form models.PaymentRequest)
	Reset()
	Snapshot() services.PaymentState
	Submit(ctx context.Context) (*models.PaymentAck, error)
}

// NewGetPaymentFormHandler returns the current form and last outcome.
func NewGetPaymentFormHandler(svc PaymentForm) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Snapshot())
	}
}

// NewUpdatePaymentFormHandler replaces the form with the request body.
func NewUpdatePaymentFormHandler(svc PaymentForm) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form models.PaymentRequest
		if err := decodeBody(r, &form); err != nil {
			writeError(w, err)
			return
		}
		svc.Update(form)
		writeJSON(w, http.StatusOK, svc.Snapshot())
	}
}

// NewSubmitPaymentHandler submits the current form. The response carries the
// payment URL for the caller to open.
func NewSubmitPaymentHandler(svc PaymentForm) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := svc.Submit(r.Context())
		switch {
		case errors.Is(err, services.ErrStaleResponse):
			writeJSON(w, http.StatusOK, svc.Snapshot())
		case err != nil:
			writeError(w, err)
		default:
			writeJSON(w, http.StatusCreated, svc.Snapshot())
		}
	}
}

// NewResetPaymentFormHandler restores the default form.
func NewResetPaymentFormHandler(svc PaymentForm) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Reset()
		writeJSON(w, http.StatusOK, svc.Snapshot())
	}
}
