package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/school-payments-console/internal/models"
)

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

// Registerer defines the interface that the session store must implement for registration.
type Registerer interface {
	Register(ctx context.Context, email, password string) error
	Current() (models.Session, bool)
}

// NewRegisterHandler returns an HTTP handler that creates an account and signs it in.
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AuthRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if err := svc.Register(r.Context(), req.Email, req.Password); err != nil {
			writeError(w, err)
			return
		}

		sess, _ := svc.Current()
		writeJSON(w, http.StatusCreated, SessionResponse{User: sess.User})
	}
}
