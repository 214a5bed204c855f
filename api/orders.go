package api

import (
	"context"
	"fmt"

	"github.com/jfmanager/web/entity"
)

func (c *Client) ListOrders(ctx context.Context) (*entity.Page[entity.Order], error) {
	var page entity.Page[entity.Order]
	if err := c.get(ctx, "/orders/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	var created entity.Order
	if err := c.post(ctx, "/orders/", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/orders/%d/", id))
}

func (c *Client) ListOrderStatuses(ctx context.Context) (*entity.Page[entity.OrderStatus], error) {
	var page entity.Page[entity.OrderStatus]
	if err := c.get(ctx, "/orders/statuses/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) ListOrderableItems(ctx context.Context) (*entity.Page[entity.OrderableItem], error) {
	var page entity.Page[entity.OrderableItem]
	if err := c.get(ctx, "/orders/orderable-items/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
