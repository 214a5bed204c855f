package api

import (
	"context"
	"fmt"

	"github.com/jfmanager/web/entity"
)

func (c *Client) ListParents(ctx context.Context, params *MemberListParams) (*entity.Page[entity.Parent], error) {
	var page entity.Page[entity.Parent]
	if err := c.get(ctx, "/parents/", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetParent(ctx context.Context, id int64) (*entity.Parent, error) {
	var parent entity.Parent
	if err := c.get(ctx, fmt.Sprintf("/parents/%d/", id), nil, &parent); err != nil {
		return nil, err
	}
	return &parent, nil
}

func (c *Client) CreateParent(ctx context.Context, parent *entity.Parent) (*entity.Parent, error) {
	var created entity.Parent
	if err := c.post(ctx, "/parents/", parent, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateParent(ctx context.Context, id int64, patch map[string]any) (*entity.Parent, error) {
	var updated entity.Parent
	if err := c.patch(ctx, fmt.Sprintf("/parents/%d/", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteParent(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/parents/%d/", id))
}
