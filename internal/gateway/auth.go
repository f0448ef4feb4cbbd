package gateway

import (
	"context"
	"net/http"

	"github.com/citrushq/citrus/internal/model"
)

type credentials struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

type authResponse struct {
	User  model.UserProfile `json:"user"`
	Token string            `json:"token"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.UserProfile, string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

// Signup registers a new user and returns a session token.
func (c *Client) Signup(ctx context.Context, email, name, password string) (*model.UserProfile, string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", credentials{Email: email, Name: name, Password: password}, &resp)
	if err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

// Logout invalidates the current session token on the server. Local state
// is the session manager's concern.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
