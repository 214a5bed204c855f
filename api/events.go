package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jfmanager/web/entity"
)

type EventListParams struct {
	Member   int64
	Type     int64
	Ordering string
}

func (p *EventListParams) values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	if p.Member != 0 {
		v.Set("member", strconv.FormatInt(p.Member, 10))
	}
	if p.Type != 0 {
		v.Set("type", strconv.FormatInt(p.Type, 10))
	}
	if p.Ordering != "" {
		v.Set("ordering", p.Ordering)
	}
	return v
}

func (c *Client) ListEvents(ctx context.Context, params *EventListParams) (*entity.Page[entity.Event], error) {
	var page entity.Page[entity.Event]
	if err := c.get(ctx, "/events/", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetEvent(ctx context.Context, id int64) (*entity.Event, error) {
	var event entity.Event
	if err := c.get(ctx, fmt.Sprintf("/events/%d/", id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	var created entity.Event
	if err := c.post(ctx, "/events/", event, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, patch map[string]any) (*entity.Event, error) {
	var updated entity.Event
	if err := c.patch(ctx, fmt.Sprintf("/events/%d/", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/events/%d/", id))
}

func (c *Client) ListEventTypes(ctx context.Context) (*entity.Page[entity.EventType], error) {
	var page entity.Page[entity.EventType]
	if err := c.get(ctx, "/event-types/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateEventType(ctx context.Context, eventType *entity.EventType) (*entity.EventType, error) {
	var created entity.EventType
	if err := c.post(ctx, "/event-types/", eventType, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateEventType(ctx context.Context, id int64, patch map[string]any) (*entity.EventType, error) {
	var updated entity.EventType
	if err := c.patch(ctx, fmt.Sprintf("/event-types/%d/", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteEventType(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/event-types/%d/", id))
}
