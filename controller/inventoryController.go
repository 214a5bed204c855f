package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/jfmanager/web/api"
	"github.com/jfmanager/web/entity"
	"github.com/jfmanager/web/helpers"
	"github.com/jfmanager/web/widget"
)

type InventoryController struct {
	API *api.Client
}

func (h *InventoryController) InventoryPage(c *gin.Context) {
	categories, err := h.API.ListCategories(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": api.ErrorDetail(err, "Failed to fetch categories")})
		return
	}

	c.HTML(http.StatusOK, "inventory.html", gin.H{"Categories": categories.Results})
}

func (h *InventoryController) TransactionFormPage(c *gin.Context) {
	form := widget.NewTransactionForm()
	form.SetType(entity.TransactionType(c.Query("transaction_type")))

	c.HTML(http.StatusOK, "transaction_form.html", gin.H{
		"Form":       form,
		"DebounceMs": helpers.DropdownDebounce.Milliseconds(),
		"Types": []entity.TransactionType{
			entity.TransactionIn,
			entity.TransactionOut,
			entity.TransactionMove,
			entity.TransactionLoan,
			entity.TransactionReturn,
			entity.TransactionDiscard,
		},
	})
}

type transactionForm struct {
	Type     string `schema:"transaction_type"`
	Item     int64  `schema:"item"`
	Variant  int64  `schema:"item_variant"`
	Source   int64  `schema:"source"`
	Target   int64  `schema:"target"`
	Quantity int    `schema:"quantity"`
	Note     string `schema:"note"`
}

func (h *InventoryController) TransactionCreate(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": err.Error()})
		return
	}

	var form transactionForm
	if err := decoder.Decode(&form, c.Request.PostForm); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": err.Error()})
		return
	}

	rules := widget.NewTransactionForm()
	rules.SetType(entity.TransactionType(form.Type))

	switch {
	case form.Item == 0 && form.Variant == 0:
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": "Artikel oder Variante wählen"})
		return
	case form.Quantity <= 0:
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": "Menge muss positiv sein"})
		return
	case rules.Visibility.SourceRequired && form.Source == 0:
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": "Quelle ist erforderlich"})
		return
	case rules.Visibility.TargetRequired && form.Target == 0:
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": "Ziel ist erforderlich"})
		return
	}

	transaction := &entity.Transaction{
		Type:     entity.TransactionType(form.Type),
		Quantity: form.Quantity,
		Note:     form.Note,
	}
	selection := widget.ItemSelection{}
	selection.SelectItem(form.Item)
	if form.Variant != 0 {
		selection.SelectVariant(form.Variant)
	}
	if selection.ItemID != 0 {
		transaction.ItemID = &selection.ItemID
	}
	if selection.VariantID != 0 {
		transaction.Variant = &selection.VariantID
	}
	if form.Source != 0 {
		transaction.SourceID = &form.Source
	}
	if form.Target != 0 {
		transaction.TargetID = &form.Target
	}

	if _, err := h.API.CreateTransaction(c.Request.Context(), transaction); err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": api.ErrorDetail(err, "Failed to create transaction")})
		return
	}

	c.Redirect(http.StatusFound, "/inventory")
}

// searchEntry normalizes items and variants into the shape the item
// dropdown renders.
type searchEntry struct {
	ID          int64  `json:"id"`
	Kind        string `json:"type"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	DisplayName string `json:"display_name"`
	TotalStock  int    `json:"total_stock"`
}

// SearchItems feeds the item dropdown: items and variants are fetched in
// parallel and merged.
func (h *InventoryController) SearchItems(c *gin.Context) {
	query := c.Query("q")
	ctx := c.Request.Context()

	var (
		items    *entity.Page[entity.Item]
		variants *entity.Page[entity.ItemVariant]
	)

	errwg := new(errgroup.Group)
	errwg.Go(func() error {
		var err error
		items, err = h.API.SearchItems(ctx, query)
		return err
	})
	errwg.Go(func() error {
		var err error
		variants, err = h.API.SearchVariants(ctx, query)
		return err
	})

	if err := errwg.Wait(); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": api.ErrorDetail(err, "Search failed")})
		return
	}

	combined := make([]searchEntry, 0, len(items.Results)+len(variants.Results))
	for _, i := range items.Results {
		combined = append(combined, searchEntry{
			ID:          i.ID,
			Kind:        "item",
			Name:        i.Name,
			Category:    i.CategoryName,
			DisplayName: i.DisplayName(),
			TotalStock:  i.TotalStock,
		})
	}
	for _, v := range variants.Results {
		combined = append(combined, searchEntry{
			ID:          v.ID,
			Kind:        "variant",
			Name:        v.ParentItemName,
			Category:    v.CategoryName,
			DisplayName: v.DisplayName(),
			TotalStock:  v.TotalStock,
		})
	}

	c.JSON(http.StatusOK, gin.H{"results": combined})
}

func (h *InventoryController) SearchLocations(c *gin.Context) {
	page, err := h.API.SearchLocations(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": api.ErrorDetail(err, "Search failed")})
		return
	}

	type locationEntry struct {
		ID       int64  `json:"id"`
		FullPath string `json:"full_path"`
		IsMember bool   `json:"is_member"`
	}

	results := make([]locationEntry, 0, len(page.Results))
	for _, l := range page.Results {
		results = append(results, locationEntry{ID: l.ID, FullPath: l.Label(), IsMember: l.IsMember})
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// StockInfo reports stock for the selected item or variant, narrowed to
// the source location when one is chosen.
func (h *InventoryController) StockInfo(c *gin.Context) {
	itemID, _ := strconv.ParseInt(c.Query("item_id"), 10, 64)
	variantID, _ := strconv.ParseInt(c.Query("variant_id"), 10, 64)
	locationID, _ := strconv.ParseInt(c.Query("location_id"), 10, 64)

	selection := widget.ItemSelection{ItemID: itemID, VariantID: variantID}
	if selection.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "item_id or variant_id required"})
		return
	}

	var (
		report *entity.StockReport
		err    error
	)
	// Variant wins when both are sent, like the form's change handlers.
	if variantID != 0 {
		report, err = h.API.VariantStock(c.Request.Context(), variantID, locationID)
	} else {
		report, err = h.API.ItemStock(c.Request.Context(), itemID, locationID)
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": api.ErrorDetail(err, "Failed to fetch stock")})
		return
	}

	c.JSON(http.StatusOK, report)
}

// CategoryFields returns the typed field list for a category so the item
// form can render its dynamic section.
func (h *InventoryController) CategoryFields(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid category id"})
		return
	}

	schema, err := h.API.CategorySchema(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": api.ErrorDetail(err, "Failed to fetch schema")})
		return
	}

	type fieldEntry struct {
		Name  string `json:"name"`
		Kind  string `json:"kind"`
		Label string `json:"label"`
	}

	fields := widget.ParseSchema(schema)
	out := make([]fieldEntry, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldEntry{Name: f.Name, Kind: f.Kind.String(), Label: f.Label()})
	}

	c.JSON(http.StatusOK, gin.H{"fields": out})
}
