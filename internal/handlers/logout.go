package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/school-payments-console/internal/logger"
)

//go:generate mockgen -source=logout.go -destination=logout_mock.go -package=handlers

// Logouter ends the current session.
type Logouter interface {
	Logout(ctx context.Context) error
}

// NewLogoutHandler returns an HTTP handler that signs out and redirects to the login page.
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context()); err != nil {
			// memory is already cleared at this point
			logger.Log.Errorw("failed to erase persisted session", "error", err)
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
