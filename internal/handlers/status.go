package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/services"
)

//go:generate mockgen -source=status.go -destination=status_mock.go -package=handlers

// StatusLooker looks transactions up by custom order id.
type StatusLooker interface {
	Lookup(ctx context.Context, customOrderID string) (*models.StatusLookupResult, error)
	Snapshot() services.StatusState
}

// NewTransactionStatusHandler returns the status of the transaction named by
// the custom_order_id query parameter.
func NewTransactionStatusHandler(svc StatusLooker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := svc.Lookup(r.Context(), r.URL.Query().Get("custom_order_id"))
		if err != nil && !errors.Is(err, services.ErrStaleResponse) {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, svc.Snapshot())
	}
}
