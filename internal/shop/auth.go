package shop

import (
	"context"
	"net/http"

	"github.com/hegerb/rohlik-admin/internal/domain"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. Persisting the token is
// the caller's job; the client holds no session state.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp authResponse
	err := c.call(ctx, "auth.login", http.MethodPost, "/auth/login",
		credentials{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates an account and returns a token for the fresh user, so
// registration doubles as login.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var resp authResponse
	err := c.call(ctx, "auth.register", http.MethodPost, "/auth/register",
		credentials{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// CurrentUser fetches the profile behind the session token, confirming the
// token is still valid.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.call(ctx, "auth.me", http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
