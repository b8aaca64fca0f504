package upstream

import (
	"context"
	"fmt"
	"net/http"

	"brokerweb/internal/model"
)

// LoginResult is the backend's authentication response. Both fields must be
// present for the result to be usable; a token without a user is rejected by
// the auth service.
type LoginResult struct {
	AccessToken string     `json:"access_token"`
	User        model.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login authenticates a back-office user.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", nil, loginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// AdminLogin authenticates against the dedicated admin login endpoint.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/admin/auth/login", "", nil, loginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates a back-office account and logs it in.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (*LoginResult, error) {
	var res LoginResult
	req := registerRequest{Name: name, Email: email, Password: password, Role: role}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Me returns the user record the backend associates with token. A 401 here
// means the session is dead and must be fully cleared.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, nil, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("backend: empty user record")
	}
	return &user, nil
}

// ChangePassword updates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, token, current, updated string) error {
	req := changePasswordRequest{CurrentPassword: current, NewPassword: updated}
	return c.do(ctx, http.MethodPut, "/api/auth/change-password", token, nil, req, nil)
}
