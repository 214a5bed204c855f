package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jfmanager/web/entity"
)

// MemberListParams are the supported filters of GET /members/.
type MemberListParams struct {
	Limit    int
	Offset   int
	Search   string
	Status   int64
	Group    int64
	Ordering string
}

func (p *MemberListParams) values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Status != 0 {
		v.Set("status", strconv.FormatInt(p.Status, 10))
	}
	if p.Group != 0 {
		v.Set("group", strconv.FormatInt(p.Group, 10))
	}
	if p.Ordering != "" {
		v.Set("ordering", p.Ordering)
	}
	return v
}

func (c *Client) ListMembers(ctx context.Context, params *MemberListParams) (*entity.Page[entity.Member], error) {
	var page entity.Page[entity.Member]
	if err := c.get(ctx, "/members/", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetMember(ctx context.Context, id int64) (*entity.Member, error) {
	var member entity.Member
	if err := c.get(ctx, fmt.Sprintf("/members/%d/", id), nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *Client) CreateMember(ctx context.Context, member *entity.Member) (*entity.Member, error) {
	var created entity.Member
	if err := c.post(ctx, "/members/", member, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateMember sends a partial update. Only the fields present in patch
// change on the server.
func (c *Client) UpdateMember(ctx context.Context, id int64, patch map[string]any) (*entity.Member, error) {
	var updated entity.Member
	if err := c.patch(ctx, fmt.Sprintf("/members/%d/", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteMember(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/members/%d/", id))
}

func (c *Client) MemberStatistics(ctx context.Context) (*entity.MemberStatistics, error) {
	var stats entity.MemberStatistics
	if err := c.get(ctx, "/members/statistics/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) MemberParents(ctx context.Context, id int64) ([]entity.Parent, error) {
	var parents []entity.Parent
	if err := c.get(ctx, fmt.Sprintf("/members/%d/parents/", id), nil, &parents); err != nil {
		return nil, err
	}
	return parents, nil
}

func (c *Client) MemberEvents(ctx context.Context, id int64) ([]entity.Event, error) {
	var events []entity.Event
	if err := c.get(ctx, fmt.Sprintf("/members/%d/events/", id), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) ListStatuses(ctx context.Context) (*entity.Page[entity.Status], error) {
	var page entity.Page[entity.Status]
	if err := c.get(ctx, "/statuses/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateStatus(ctx context.Context, status *entity.Status) (*entity.Status, error) {
	var created entity.Status
	if err := c.post(ctx, "/statuses/", status, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, patch map[string]any) (*entity.Status, error) {
	var updated entity.Status
	if err := c.patch(ctx, fmt.Sprintf("/statuses/%d/", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteStatus(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/statuses/%d/", id))
}

func (c *Client) ListGroups(ctx context.Context) (*entity.Page[entity.Group], error) {
	var page entity.Page[entity.Group]
	if err := c.get(ctx, "/groups/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	var created entity.Group
	if err := c.post(ctx, "/groups/", group, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateGroup(ctx context.Context, id int64, patch map[string]any) (*entity.Group, error) {
	var updated entity.Group
	if err := c.patch(ctx, fmt.Sprintf("/groups/%d/", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/groups/%d/", id))
}
