package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned for credentials that are not a parseable JWT.
var ErrNotJWT = errors.New("credential is not a JWT")

// Inspector reads claims from access tokens without verifying their
// signature. The collaborator remains the only verifier.
type Inspector struct {
	parser *jwt.Parser
}

// New creates an Inspector.
func New() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

// ExpiresAt returns the token's exp claim, or nil when the token has none.
func (i *Inspector) ExpiresAt(tokenString string) (*time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrNotJWT
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, nil
	}
	t := exp.Time
	return &t, nil
}
