package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"orderdesk/internal/domain"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for the user record carrying fresh tokens. The
// call is public; persisting the result is the session layer's job.
func (c *Client) Login(ctx context.Context, creds Credentials) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/user/login",
		body:     creds,
		public:   true,
		fallback: "An error occurred during login. Please try again.",
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout notifies the server. Callers treat failures as non-fatal; the local
// session is cleared regardless.
func (c *Client) Logout(ctx context.Context, userID string) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/user/logout/" + url.PathEscape(userID),
		fallback: "Failed to log out",
	}, nil)
}

func (c *Client) GetAllUsers(ctx context.Context, page, limit int, filter domain.UserFilter) (*domain.UserPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.Email != "" {
		query.Set("email", filter.Email)
	}
	if filter.Phone != "" {
		query.Set("phone", filter.Phone)
	}

	var result domain.UserPage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/user/getAllUsers",
		query:    query,
		fallback: "Failed to fetch users",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/user/getUserById/" + url.PathEscape(id),
		fallback: "Failed to fetch user",
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) RegisterUser(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/user/register",
		body:     reg,
		fallback: "Failed to register user",
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserUpdate struct {
	Name  string      `json:"name,omitempty"`
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/user/updateUser/" + url.PathEscape(id),
		body:     update,
		fallback: "Failed to update user",
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/user/deleteUser/" + url.PathEscape(id),
		fallback: "Failed to delete user",
	}, nil)
}

// ForgotPassword asks the server to mint a password reset token for the
// account. The console uses it to start a reset on a user's behalf; the token
// comes back in the envelope result.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var token string
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/user/forgotPassword",
		body:     map[string]string{"email": email},
		fallback: "Failed to process forgot password request",
	}, &token)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword sets a new password, keyed by the reset token from
// ForgotPassword rather than the user id.
func (c *Client) ResetPassword(ctx context.Context, token string, reset domain.PasswordReset) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/user/resetPassword/" + url.PathEscape(token),
		body:     reset,
		fallback: "Failed to reset password",
	}, nil)
}
