package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/jfmanager/web/session"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the login and refresh response shape.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	var pair TokenPair
	err := c.post(ctx, "/auth/login/", LoginRequest{Username: username, Password: password}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Verify checks a token against the backend without side effects.
func (c *Client) Verify(ctx context.Context, token string) error {
	return c.post(ctx, "/auth/verify/", map[string]string{"token": token}, nil)
}

// Refresher exposes the raw refresh exchange so callers can rotate the
// session on demand.
func (c *Client) Refresher() session.RefreshFunc {
	return c.refreshAccessToken
}

// refreshAccessToken performs the raw refresh call. It deliberately goes
// through the bare client: the authenticated transport must never
// intercept its own refresh.
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) (string, string, error) {
	b, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh/", bytes.NewReader(b))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.refreshClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", "", decodeError(resp)
	}

	var pair TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return "", "", err
	}
	return pair.Access, pair.Refresh, nil
}
