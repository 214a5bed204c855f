package entity

type OrderStatus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type OrderableItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type OrderItem struct {
	ID       int64 `json:"id"`
	OrderID  int64 `json:"order"`
	ItemID   int64 `json:"orderable_item"`
	Quantity int   `json:"quantity"`
}

type Order struct {
	ID       int64  `json:"id"`
	MemberID *int64 `json:"member"`
	StatusID *int64 `json:"status"`
	Notes    string `json:"notes,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}
