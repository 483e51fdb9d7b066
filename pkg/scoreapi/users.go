package scoreapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// RegisterUser creates a new account. It does not log the user in.
func (c *Client) RegisterUser(ctx context.Context, user User) (*User, error) {
	if err := c.validateStruct(user); err != nil {
		return nil, err
	}
	if strings.TrimSpace(user.Password) == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	var created User
	if err := c.doJSON(ctx, http.MethodPost, "/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Login exchanges username and password for a bearer token and stores it in
// the client's credential holder.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token Token
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/token",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &token)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(token.AccessToken) == "" {
		return nil, errors.New("login response carries no access token")
	}

	c.creds.Set(token.AccessToken)
	return &token, nil
}

// Logout forgets the held credential. The remote service is not contacted.
func (c *Client) Logout() {
	c.creds.Clear()
}

func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers is admin only.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.doJSON(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (c *Client) IsAdmin(ctx context.Context) (bool, error) {
	var admin bool
	if err := c.doJSON(ctx, http.MethodGet, "/is_admin", nil, &admin); err != nil {
		return false, err
	}
	return admin, nil
}

// ValidToken reports whether the held credential is still accepted. A 401 is
// an answer, not an error.
func (c *Client) ValidToken(ctx context.Context) (bool, error) {
	err := c.doJSON(ctx, http.MethodGet, "/is_admin", nil, nil)
	if err == nil {
		return true, nil
	}
	if IsUnauthorized(err) {
		return false, nil
	}
	return false, err
}
