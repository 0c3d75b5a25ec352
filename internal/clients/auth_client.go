// internal/clients/auth_client.go
package clients

import (
	"context"
	"fmt"
	"net/http"
)

// AuthClient registers users and exchanges credentials for a token.
type AuthClient struct {
	base
}

// Login is the result of a successful login.
type Login struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func NewAuthClient(baseURL string, opts Options) *AuthClient {
	return &AuthClient{base: newBase(baseURL, "auth", opts)}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *AuthClient) Register(ctx context.Context, username, password string) error {
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", credentials{username, password}, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (c *AuthClient) Login(ctx context.Context, username, password string) (*Login, error) {
	var login Login
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", credentials{username, password}, &login); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if login.Token == "" {
		return nil, fmt.Errorf("login: response carried no token")
	}
	return &login, nil
}
