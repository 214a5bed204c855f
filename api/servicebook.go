package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jfmanager/web/entity"
)

func (c *Client) ListServices(ctx context.Context) (*entity.Page[entity.Service], error) {
	var page entity.Page[entity.Service]
	if err := c.get(ctx, "/servicebook/services/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateService(ctx context.Context, service *entity.Service) (*entity.Service, error) {
	var created entity.Service
	if err := c.post(ctx, "/servicebook/services/", service, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteService(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/servicebook/services/%d/", id))
}

func (c *Client) ListAttendances(ctx context.Context, serviceID int64) (*entity.Page[entity.Attendance], error) {
	var params url.Values
	if serviceID != 0 {
		params = url.Values{}
		params.Set("service", strconv.FormatInt(serviceID, 10))
	}

	var page entity.Page[entity.Attendance]
	if err := c.get(ctx, "/servicebook/attandances/", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
