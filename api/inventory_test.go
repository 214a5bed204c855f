package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchItemsRetriesTransientFailures(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory/items/search/", r.URL.Path)
		assert.Equal(t, "helm", r.URL.Query().Get("q"))

		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"detail": "upstream"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 3, "name": "Helm", "total_stock": 12}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, newTestSession(t, "access", "refresh"))

	page, err := client.SearchItems(context.Background(), "helm")
	require.NoError(t, err)

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Helm", page.Results[0].Name)
}

func TestVariantStockSendsLocationFilter(t *testing.T) {
	var gotPath, gotLocation string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLocation = r.URL.Query().Get("location_id")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 5, "rows": [{"location_id": 2, "location_name": "Lager", "quantity": 5}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, newTestSession(t, "access", "refresh"))

	report, err := client.VariantStock(context.Background(), 9, 2)
	require.NoError(t, err)

	assert.Equal(t, "/inventory/variants/9/stock/", gotPath)
	assert.Equal(t, "2", gotLocation)
	assert.Equal(t, 5, report.Total)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Lager", report.Rows[0].LocationName)
}

func TestItemStockWithoutLocationOmitsFilter(t *testing.T) {
	var gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 12, "rows": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, newTestSession(t, "access", "refresh"))

	report, err := client.ItemStock(context.Background(), 3, 0)
	require.NoError(t, err)

	assert.Empty(t, gotQuery)
	assert.Equal(t, 12, report.Total)
}

func TestCategorySchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory/categories/4/schema/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"schema": {"size": "number", "color": "text"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, newTestSession(t, "access", "refresh"))

	schema, err := client.CategorySchema(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"size": "number", "color": "text"}, schema)
}
