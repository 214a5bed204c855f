package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/flowchartsman/retry"

	"github.com/jfmanager/web/entity"
	"github.com/jfmanager/web/helpers"
)

// Search and stock lookups back the live widgets, so transient failures
// retry instead of surfacing into the form.

func (c *Client) SearchItems(ctx context.Context, query string) (*entity.Page[entity.Item], error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(helpers.SearchPageSize))

	retrier := retry.NewRetrier(5, 100*time.Millisecond, time.Second)

	var page entity.Page[entity.Item]
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		return c.get(ctx, "/inventory/items/search/", params, &page)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) SearchVariants(ctx context.Context, query string) (*entity.Page[entity.ItemVariant], error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(helpers.SearchPageSize))

	retrier := retry.NewRetrier(5, 100*time.Millisecond, time.Second)

	var page entity.Page[entity.ItemVariant]
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		return c.get(ctx, "/inventory/variants/", params, &page)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) SearchLocations(ctx context.Context, query string) (*entity.Page[entity.StorageLocation], error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(helpers.SearchPageSize))

	retrier := retry.NewRetrier(5, 100*time.Millisecond, time.Second)

	var page entity.Page[entity.StorageLocation]
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		return c.get(ctx, "/inventory/locations/", params, &page)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ItemStock aggregates an item's stock, optionally narrowed to one
// location.
func (c *Client) ItemStock(ctx context.Context, itemID int64, locationID int64) (*entity.StockReport, error) {
	return c.stock(ctx, fmt.Sprintf("/inventory/items/%d/stock/", itemID), locationID)
}

func (c *Client) VariantStock(ctx context.Context, variantID int64, locationID int64) (*entity.StockReport, error) {
	return c.stock(ctx, fmt.Sprintf("/inventory/variants/%d/stock/", variantID), locationID)
}

func (c *Client) stock(ctx context.Context, path string, locationID int64) (*entity.StockReport, error) {
	var params url.Values
	if locationID != 0 {
		params = url.Values{}
		params.Set("location_id", strconv.FormatInt(locationID, 10))
	}

	retrier := retry.NewRetrier(5, 100*time.Millisecond, time.Second)

	var report entity.StockReport
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		return c.get(ctx, path, params, &report)
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// CategorySchema returns the category's attribute name to field kind map.
func (c *Client) CategorySchema(ctx context.Context, categoryID int64) (map[string]string, error) {
	var payload struct {
		Schema map[string]string `json:"schema"`
	}
	err := c.get(ctx, fmt.Sprintf("/inventory/categories/%d/schema/", categoryID), nil, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Schema, nil
}

func (c *Client) ListCategories(ctx context.Context) (*entity.Page[entity.Category], error) {
	var page entity.Page[entity.Category]
	if err := c.get(ctx, "/inventory/categories/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateTransaction(ctx context.Context, transaction *entity.Transaction) (*entity.Transaction, error) {
	var created entity.Transaction
	if err := c.post(ctx, "/inventory/transactions/", transaction, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
