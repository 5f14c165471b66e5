package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jamal0042/boomPlan/internal/models"
)

// AuthResponse is the token+user pair the auth endpoints return.
type AuthResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// AuthService talks to the remote API's authentication endpoints.
type AuthService struct {
	client *Client
}

// NewAuthService creates an auth gateway over the shared client.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileEnvelope struct {
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
}

// Register creates a new account and returns the credential and the
// server's user record.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := s.client.do(ctx, http.MethodPost, "/auth/register", nil, req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges email and password for a credential and the server's
// user record.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	body := loginRequest{Email: email, Password: password}
	if err := s.client.do(ctx, http.MethodPost, "/auth/login", nil, body, &out, false); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, errors.New("no credential in login response")
	}
	return &out, nil
}

// UpdateProfile sends partial user fields and returns the server's full
// user record. Requires a persisted credential.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int, update models.ProfileUpdate) (*models.User, error) {
	var out profileEnvelope
	path := fmt.Sprintf("/auth/profile/%d", userID)
	if err := s.client.do(ctx, http.MethodPut, path, nil, update, &out, true); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, errors.New("no user in profile response")
	}
	return out.User, nil
}
