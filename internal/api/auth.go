// ABOUTME: Authentication endpoints of the ticketing backend
// ABOUTME: Signin, signup, current-user lookup, and signout

package api

import (
	"context"
	"net/http"
)

// SignIn calls POST /auth/signin.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/signin", nil, LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignUp calls POST /auth/signup.
func (c *Client) SignUp(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser calls GET /auth/me.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignOut calls POST /auth/logout. Callers treat this as best-effort.
func (c *Client) SignOut(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
