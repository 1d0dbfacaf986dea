// Package api exposes one typed facade per backend resource area. Every
// facade shares a single transport.Client, so credential attachment and
// authorization-failure interception apply uniformly.
package api

import (
	"context"

	"github.com/careerconnect/client/api/transport"
)

// Auth covers the /auth resource group.
type Auth struct {
	t *transport.Client
}

func NewAuth(t *transport.Client) *Auth {
	return &Auth{t: t}
}

func (a *Auth) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResponse, error) {
	var out transport.AuthResponse
	if err := a.t.Post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (*transport.AuthResponse, error) {
	var out transport.AuthResponse
	req := transport.LoginRequest{Email: email, Password: password}
	if err := a.t.Post(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser fetches the authoritative user and profile for the attached
// credential.
func (a *Auth) CurrentUser(ctx context.Context) (*transport.CurrentUserResponse, error) {
	var out transport.CurrentUserResponse
	if err := a.t.Get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Auth) PasswordReset(ctx context.Context, email string) error {
	return a.t.Post(ctx, "/auth/password-reset", transport.PasswordResetRequest{Email: email}, nil)
}
