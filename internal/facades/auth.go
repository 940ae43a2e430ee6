package facades

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/school-payments-console/internal/models"
)

// AuthHTTPFacade calls the collaborator's login and registration endpoints.
type AuthHTTPFacade struct {
	client *Client
}

// NewAuthHTTPFacade creates a new facade over client.
func NewAuthHTTPFacade(client *Client) *AuthHTTPFacade {
	return &AuthHTTPFacade{client: client}
}

// Login exchanges credentials for an access token and user record.
func (f *AuthHTTPFacade) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return f.authenticate(ctx, "/auth/login", email, password)
}

// Register creates an account and returns its access token and user record.
func (f *AuthHTTPFacade) Register(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return f.authenticate(ctx, "/auth/register", email, password)
}

func (f *AuthHTTPFacade) authenticate(ctx context.Context, path, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	body := models.AuthRequest{Email: email, Password: password}
	if err := f.client.do(ctx, http.MethodPost, path, nil, "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
