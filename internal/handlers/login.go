package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/school-payments-console/internal/models"
)

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

// Loginer defines the interface that the session store must implement for login.
type Loginer interface {
	Login(ctx context.Context, email, password string) error
	Current() (models.Session, bool)
}

// SessionResponse is the body returned after a successful login or registration.
type SessionResponse struct {
	User models.User `json:"user"`
}

// NewLoginHandler returns an HTTP handler that signs a staff member in.
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AuthRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if err := svc.Login(r.Context(), req.Email, req.Password); err != nil {
			writeError(w, err)
			return
		}

		sess, _ := svc.Current()
		writeJSON(w, http.StatusOK, SessionResponse{User: sess.User})
	}
}
