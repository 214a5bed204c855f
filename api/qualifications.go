package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jfmanager/web/entity"
)

func (c *Client) ListQualificationTypes(ctx context.Context) (*entity.Page[entity.QualificationType], error) {
	var page entity.Page[entity.QualificationType]
	if err := c.get(ctx, "/qualifications/types/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) ListQualifications(ctx context.Context, memberID int64) (*entity.Page[entity.Qualification], error) {
	var params url.Values
	if memberID != 0 {
		params = url.Values{}
		params.Set("member", strconv.FormatInt(memberID, 10))
	}

	var page entity.Page[entity.Qualification]
	if err := c.get(ctx, "/qualifications/", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateQualification(ctx context.Context, qualification *entity.Qualification) (*entity.Qualification, error) {
	var created entity.Qualification
	if err := c.post(ctx, "/qualifications/", qualification, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteQualification(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/qualifications/%d/", id))
}

// CalculateExpiry asks the backend for the expiry date a qualification of
// the given type acquires when obtained on dateAcquired. A null response
// means the type never expires.
func (c *Client) CalculateExpiry(ctx context.Context, typeID int64, dateAcquired entity.Date) (*entity.Date, error) {
	params := url.Values{}
	params.Set("type_id", strconv.FormatInt(typeID, 10))
	params.Set("date_acquired", dateAcquired.String())

	var payload struct {
		DateExpires *entity.Date `json:"date_expires"`
	}
	if err := c.get(ctx, "/qualifications/calculate-expiry/", params, &payload); err != nil {
		return nil, err
	}
	return payload.DateExpires, nil
}
