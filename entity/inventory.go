package entity

import "fmt"

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Schema maps attribute names to one of the known field kinds
	// (text, number, date, boolean, select).
	Schema map[string]string `json:"schema,omitempty"`

	ItemCount int `json:"item_count,omitempty"`
}

type Item struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CategoryID   *int64 `json:"category"`
	CategoryName string `json:"category_name,omitempty"`
	TotalStock   int    `json:"total_stock"`

	Attributes map[string]any `json:"attributes,omitempty"`
}

func (i *Item) DisplayName() string {
	if i.CategoryName == "" {
		return i.Name
	}
	return fmt.Sprintf("%s (%s)", i.Name, i.CategoryName)
}

type ItemVariant struct {
	ID             int64  `json:"id"`
	SKU            string `json:"sku,omitempty"`
	ParentItemID   int64  `json:"parent_item"`
	ParentItemName string `json:"parent_item_name,omitempty"`
	CategoryName   string `json:"category_name,omitempty"`
	TotalStock     int    `json:"total_stock"`
}

func (v *ItemVariant) DisplayName() string {
	if v.SKU == "" {
		return v.ParentItemName
	}
	return fmt.Sprintf("%s [%s]", v.ParentItemName, v.SKU)
}

type StorageLocation struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullPath string `json:"full_path,omitempty"`
	IsMember bool   `json:"is_member"`
	MemberID *int64 `json:"member,omitempty"`
}

// Label prefers the hierarchical path the backend computes.
func (l *StorageLocation) Label() string {
	if l.FullPath != "" {
		return l.FullPath
	}
	return l.Name
}

// StockRow is one location's share of an item's or variant's stock.
type StockRow struct {
	LocationID   int64  `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int    `json:"quantity"`
}

// StockReport is the shape of /inventory/items/{id}/stock/ and the
// variant equivalent.
type StockReport struct {
	Total int        `json:"total"`
	Rows  []StockRow `json:"rows"`
}

type TransactionType string

const (
	TransactionIn      TransactionType = "IN"
	TransactionOut     TransactionType = "OUT"
	TransactionMove    TransactionType = "MOVE"
	TransactionLoan    TransactionType = "LOAN"
	TransactionReturn  TransactionType = "RETURN"
	TransactionDiscard TransactionType = "DISCARD"
)

// Label returns the backend's German display name for the type.
func (t TransactionType) Label() string {
	switch t {
	case TransactionIn:
		return "Eingang"
	case TransactionOut:
		return "Ausgang"
	case TransactionMove:
		return "Umlagerung"
	case TransactionLoan:
		return "Ausleihe"
	case TransactionReturn:
		return "Rückgabe"
	case TransactionDiscard:
		return "Aussortierung"
	}
	return string(t)
}

type Transaction struct {
	ID       int64           `json:"id"`
	Type     TransactionType `json:"transaction_type"`
	ItemID   *int64          `json:"item"`
	Variant  *int64          `json:"item_variant"`
	SourceID *int64          `json:"source"`
	TargetID *int64          `json:"target"`
	Quantity int             `json:"quantity"`
	Note     string          `json:"note,omitempty"`
	UserID   *int64          `json:"user,omitempty"`
}
