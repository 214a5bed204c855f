package api

import (
	"context"
	"fmt"

	"github.com/jfmanager/web/entity"
)

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*entity.UserInfo, error) {
	var user entity.UserInfo
	if err := c.get(ctx, "/users/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches the current user's own record.
func (c *Client) UpdateProfile(ctx context.Context, patch map[string]any) (*entity.UserInfo, error) {
	user, err := c.Me(ctx)
	if err != nil {
		return nil, err
	}

	var updated entity.UserInfo
	if err := c.patch(ctx, fmt.Sprintf("/users/%d/", user.ID), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) Settings(ctx context.Context) (*entity.AppSettings, error) {
	var settings entity.AppSettings
	if err := c.get(ctx, "/settings/", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
