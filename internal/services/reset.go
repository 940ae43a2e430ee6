package services

import (
	"github.com/sbilibin2017/school-payments-console/internal/logger"
	"github.com/sbilibin2017/school-payments-console/internal/models"
)

// SessionNotifier reports every session transition, login and logout alike.
type SessionNotifier interface {
	Subscribe(fn func(*models.Session)) (unsubscribe func())
}

// Resetter is a view that can be returned to its initial state.
type Resetter interface {
	Reset()
}

// ResetOnSessionChange resets every view whenever the session changes hands,
// so nothing fetched under one session is shown under the next. A login over
// a live session counts as a change.
func ResetOnSessionChange(sessions SessionNotifier, views ...Resetter) (unsubscribe func()) {
	return sessions.Subscribe(func(s *models.Session) {
		if s != nil {
			logger.Log.Debugw("session started, resetting views", "user_id", s.User.ID)
		} else {
			logger.Log.Debugw("session ended, resetting views")
		}
		for _, v := range views {
			v.Reset()
		}
	})
}
