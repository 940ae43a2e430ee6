// Package session owns the authenticated identity and its persisted copy.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/facades"
	"github.com/sbilibin2017/school-payments-console/internal/logger"
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/state"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=session

// Fixed storage keys for the persisted session.
const (
	TokenKey = "token"
	UserKey  = "user"
)

const (
	defaultLoginError    = "Login failed"
	defaultRegisterError = "Registration failed"
)

// Authenticator exchanges credentials with the collaborator.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, email, password string) (*models.AuthResponse, error)
}

// TokenInspector reads the expiry of an access token.
type TokenInspector interface {
	ExpiresAt(token string) (*time.Time, error)
}

// Store holds at most one active session. Every transition bumps the
// generation so that requests issued under an older session can be told apart.
type Store struct {
	auth    Authenticator
	storage Storage
	tokens  TokenInspector

	mu         sync.RWMutex
	current    *models.Session
	generation uint64

	// persistMu orders activation plus persistence against logout plus
	// erasure, so storage always follows the latest transition.
	persistMu sync.Mutex

	changes *state.Cell[*models.Session]
}

// NewStore creates an empty store. tokens may be nil.
func NewStore(auth Authenticator, storage Storage, tokens TokenInspector) *Store {
	return &Store{
		auth:    auth,
		storage: storage,
		tokens:  tokens,
		changes: state.NewCell[*models.Session](nil),
	}
}

// Restore loads the persisted session. The store stays empty unless both the
// token and the user record are present and readable.
func (s *Store) Restore(ctx context.Context) error {
	token, okToken, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		logger.Log.Errorw("failed to read persisted token", "error", err)
		return fmt.Errorf("restore session: %w", err)
	}
	rawUser, okUser, err := s.storage.Get(ctx, UserKey)
	if err != nil {
		logger.Log.Errorw("failed to read persisted user", "error", err)
		return fmt.Errorf("restore session: %w", err)
	}
	if !okToken || !okUser || token == "" || rawUser == "" {
		logger.Log.Infow("no persisted session")
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		logger.Log.Warnw("persisted user is unreadable, ignoring session", "error", err)
		return nil
	}

	sess := s.newSession(token, user)
	if sess.Expired(time.Now()) {
		logger.Log.Infow("persisted session expired", "user_id", user.ID, "expires_at", sess.ExpiresAt)
		if err := s.storage.Delete(ctx, TokenKey, UserKey); err != nil {
			logger.Log.Errorw("failed to erase expired session", "error", err)
		}
		return nil
	}

	s.set(&sess)
	logger.Log.Infow("session restored", "user_id", user.ID)
	return nil
}

// Login authenticates against the collaborator and activates the session.
// A failed login leaves the current session untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, email, password, s.auth.Login, defaultLoginError)
}

// Register creates an account and activates its session.
func (s *Store) Register(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, email, password, s.auth.Register, defaultRegisterError)
}

type authFunc func(ctx context.Context, email, password string) (*models.AuthResponse, error)

func (s *Store) authenticate(ctx context.Context, email, password string, call authFunc, fallback string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &apperr.ValidationError{Field: "email", Message: "email is required"}
	}
	if password == "" {
		return &apperr.ValidationError{Field: "password", Message: "password is required"}
	}

	resp, err := call(ctx, email, password)
	if err != nil {
		logger.Log.Errorw("authentication failed", "email", email, "error", err)
		return &apperr.AuthError{Message: serverMessage(err, fallback)}
	}
	if resp == nil || resp.AccessToken == "" {
		logger.Log.Errorw("authentication returned no token", "email", email)
		return &apperr.AuthError{Message: fallback}
	}

	sess := s.newSession(resp.AccessToken, resp.User)

	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	s.set(&sess)

	userJSON, err := json.Marshal(resp.User)
	if err == nil {
		err = s.storage.Set(ctx, TokenKey, resp.AccessToken)
	}
	if err == nil {
		err = s.storage.Set(ctx, UserKey, string(userJSON))
	}
	if err != nil {
		logger.Log.Errorw("failed to persist session, it will not survive a restart", "user_id", resp.User.ID, "error", err)
	}

	logger.Log.Infow("session started", "user_id", resp.User.ID, "role", resp.User.Role)
	return nil
}

// Logout ends the session and erases its persisted copy. The in-memory
// session is cleared even when erasing fails.
func (s *Store) Logout(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	s.set(nil)
	if err := s.storage.Delete(ctx, TokenKey, UserKey); err != nil {
		logger.Log.Errorw("failed to erase persisted session", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	logger.Log.Infow("session ended")
	return nil
}

// Current returns a copy of the active session.
func (s *Store) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

// Credential returns the bearer token together with the generation it
// belongs to.
func (s *Store) Credential() (models.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Credential{Generation: s.generation}, false
	}
	return models.Credential{Token: s.current.Token, Generation: s.generation}, true
}

// Generation returns the number of session transitions so far.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Subscribe registers fn to be called after every session transition with
// the new session, or nil after logout.
func (s *Store) Subscribe(fn func(*models.Session)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

func (s *Store) set(sess *models.Session) {
	s.mu.Lock()
	s.current = sess
	s.generation++
	s.mu.Unlock()

	var snapshot *models.Session
	if sess != nil {
		cp := *sess
		snapshot = &cp
	}
	s.changes.Set(snapshot)
}

func (s *Store) newSession(token string, user models.User) models.Session {
	sess := models.Session{Token: token, User: user}
	if s.tokens == nil {
		return sess
	}
	exp, err := s.tokens.ExpiresAt(token)
	if err != nil {
		logger.Log.Debugw("token expiry unavailable", "error", err)
		return sess
	}
	sess.ExpiresAt = exp
	return sess
}

func serverMessage(err error, fallback string) string {
	var apiErr *facades.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
