package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/school-payments-console/internal/logger"
	"github.com/sbilibin2017/school-payments-console/internal/models"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

// Sessioner defines the minimal interface needed by the middleware.
type Sessioner interface {
	Current() (models.Session, bool)
	Logout(ctx context.Context) error
}

// SessionGuard returns a middleware that sends requests without a live
// session to loginPath. An expired session is logged out first.
func SessionGuard(sessions Sessioner, loginPath string, now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessions.Current()
			if !ok {
				logger.Log.Debugw("no session, redirecting", "uri", r.RequestURI)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			if sess.Expired(now()) {
				logger.Log.Infow("session expired", "user", sess.User.Email)
				if err := sessions.Logout(r.Context()); err != nil {
					logger.Log.Errorw("failed to erase expired session", "error", err)
				}
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
