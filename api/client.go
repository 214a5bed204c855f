package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jfmanager/web/helpers"
	"github.com/jfmanager/web/session"
)

// Client is the shared HTTP client for the backend API. All requests go
// through one transport chain that attaches the bearer token and performs
// the single refresh-and-replay on 401.
type Client struct {
	baseURL string
	session *session.Store
	http    *http.Client

	// refreshClient bypasses the authenticated transport so the refresh
	// call cannot recurse into itself.
	refreshClient *http.Client
}

func NewClient(baseURL string, sess *session.Store) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		session:       sess,
		refreshClient: &http.Client{Timeout: 30 * time.Second},
	}

	c.http = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &authTransport{
			base:    helpers.NewTransportWithLogger(http.DefaultTransport),
			session: sess,
			refresh: c.refreshAccessToken,
		},
	}

	return c
}

func (c *Client) url(path string, params url.Values) string {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) patch(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, params), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
