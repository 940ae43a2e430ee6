package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/services"
)

//go:generate mockgen -source=schools.go -destination=schools_mock.go -package=handlers

// SchoolPager pages through one school's transactions.
type SchoolPager interface {
	Page(ctx context.Context, schoolID string, page int) (services.ViewState, error)
}

// NewSchoolTransactionsHandler returns one page of a school's transactions.
// A missing page parameter means page 1.
func NewSchoolTransactionsHandler(svc SchoolPager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schoolID := chi.URLParam(r, "schoolId")

		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, &apperr.ValidationError{Field: "page", Message: "page must be a number"})
				return
			}
			page = n
		}

		st, err := svc.Page(r.Context(), schoolID, page)
		if err != nil && !errors.Is(err, services.ErrStaleResponse) {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}
