package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfmanager/web/api"
	"github.com/jfmanager/web/session"
)

func newInventoryRouter(t *testing.T, backend http.HandlerFunc) *gin.Engine {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	sess, err := session.Open(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)
	require.NoError(t, sess.SetTokens("access", "refresh"))

	inventory := &InventoryController{API: api.NewClient(server.URL, sess)}

	r := gin.New()
	r.LoadHTMLGlob("../templates/*")
	r.POST("/inventory/transactions", inventory.TransactionCreate)
	r.GET("/inventory/search/items", inventory.SearchItems)
	r.GET("/inventory/stock", inventory.StockInfo)
	r.GET("/inventory/categories/:id/fields", inventory.CategoryFields)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestTransactionCreateValidation(t *testing.T) {
	testCases := []struct {
		name string
		form url.Values
	}{
		{
			name: "no item or variant",
			form: url.Values{"transaction_type": {"IN"}, "quantity": {"1"}, "target": {"2"}},
		},
		{
			name: "zero quantity",
			form: url.Values{"transaction_type": {"IN"}, "item": {"3"}, "quantity": {"0"}, "target": {"2"}},
		},
		{
			name: "negative quantity",
			form: url.Values{"transaction_type": {"IN"}, "item": {"3"}, "quantity": {"-1"}, "target": {"2"}},
		},
		{
			name: "IN without target",
			form: url.Values{"transaction_type": {"IN"}, "item": {"3"}, "quantity": {"1"}},
		},
		{
			name: "OUT without source",
			form: url.Values{"transaction_type": {"OUT"}, "item": {"3"}, "quantity": {"1"}},
		},
		{
			name: "MOVE without target",
			form: url.Values{"transaction_type": {"MOVE"}, "item": {"3"}, "quantity": {"1"}, "source": {"2"}},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r := newInventoryRouter(t, func(w http.ResponseWriter, req *http.Request) {
				t.Error("invalid forms must not reach the backend")
			})

			w := postForm(r, "/inventory/transactions", testCase.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTransactionCreateSubmitsAndRedirects(t *testing.T) {
	var got map[string]any

	r := newInventoryRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/inventory/transactions/", req.URL.Path)
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 11, "transaction_type": "MOVE", "quantity": 4}`))
	})

	w := postForm(r, "/inventory/transactions", url.Values{
		"transaction_type": {"MOVE"},
		"item":             {"3"},
		"quantity":         {"4"},
		"source":           {"2"},
		"target":           {"5"},
		"note":             {"Umzug ins neue Lager"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/inventory", w.Header().Get("Location"))

	assert.Equal(t, "MOVE", got["transaction_type"])
	assert.Equal(t, float64(3), got["item"])
	assert.Nil(t, got["item_variant"])
	assert.Equal(t, float64(2), got["source"])
	assert.Equal(t, float64(5), got["target"])
	assert.Equal(t, float64(4), got["quantity"])
}

func TestTransactionCreateVariantClearsItem(t *testing.T) {
	var got map[string]any

	r := newInventoryRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 12}`))
	})

	// Both sent: the variant wins and the item is dropped.
	w := postForm(r, "/inventory/transactions", url.Values{
		"transaction_type": {"IN"},
		"item":             {"3"},
		"item_variant":     {"9"},
		"quantity":         {"1"},
		"target":           {"2"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Nil(t, got["item"])
	assert.Equal(t, float64(9), got["item_variant"])
}

func TestSearchItemsMergesItemsAndVariants(t *testing.T) {
	r := newInventoryRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch req.URL.Path {
		case "/inventory/items/search/":
			_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 3, "name": "Helm", "category_name": "Schutzausrüstung", "total_stock": 12}]}`))
		case "/inventory/variants/":
			_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 9, "sku": "EJ-XL", "parent_item": 4, "parent_item_name": "Einsatzjacke", "total_stock": 3}]}`))
		}
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/inventory/search/items?q=e", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Results []struct {
			ID          int64  `json:"id"`
			Kind        string `json:"type"`
			DisplayName string `json:"display_name"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	require.Len(t, payload.Results, 2)
	assert.Equal(t, "item", payload.Results[0].Kind)
	assert.Equal(t, "Helm (Schutzausrüstung)", payload.Results[0].DisplayName)
	assert.Equal(t, "variant", payload.Results[1].Kind)
	assert.Equal(t, "Einsatzjacke [EJ-XL]", payload.Results[1].DisplayName)
}

func TestStockInfoVariantWins(t *testing.T) {
	var gotPath string

	r := newInventoryRouter(t, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 5, "rows": []}`))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/inventory/stock?item_id=3&variant_id=9", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/inventory/variants/9/stock/", gotPath)
}

func TestStockInfoRequiresSelection(t *testing.T) {
	r := newInventoryRouter(t, func(w http.ResponseWriter, req *http.Request) {
		t.Error("no backend call expected")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/inventory/stock", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryFields(t *testing.T) {
	r := newInventoryRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/inventory/categories/4/schema/", req.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"schema": {"size": "number", "purchase_date": "date"}}`))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/inventory/categories/4/fields", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Fields []struct {
			Name  string `json:"name"`
			Kind  string `json:"kind"`
			Label string `json:"label"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	require.Len(t, payload.Fields, 2)
	assert.Equal(t, "purchase_date", payload.Fields[0].Name)
	assert.Equal(t, "date", payload.Fields[0].Kind)
	assert.Equal(t, "Purchase Date", payload.Fields[0].Label)
	assert.Equal(t, "size", payload.Fields[1].Name)
	assert.Equal(t, "number", payload.Fields[1].Kind)
}
