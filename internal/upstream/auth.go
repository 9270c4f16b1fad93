package upstream

import (
	"context"
	"net/http"

	"github.com/campuseats/gateway/internal/models"
)

// LoginResult is what the upstream auth service returns on a successful
// login. Token issuance stays upstream; the gateway only consumes it.
type LoginResult struct {
	User         models.Profile `json:"user"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
}

// AuthClient delegates credential checks to the backend's login endpoint.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

// Login accepts an email or admission number as identifier.
func (a *AuthClient) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	body := map[string]string{
		"email":    identifier,
		"password": password,
	}
	var result LoginResult
	err := a.c.do(ctx, http.MethodPost, "/user/login", nil, body, &result)
	return result, err
}
