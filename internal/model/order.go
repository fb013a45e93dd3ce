package model

import "time"

// Order mirrors the tbl_orders table.  An order and its items are written in
// one transaction and never mutated afterwards; TotalAmount always equals
// the sum of the item subtotals.
type Order struct {
	ID           uint64      `json:"id"`
	CustomerID   uint64      `json:"customer_id"`
	RestaurantID uint64      `json:"restaurant_id"`
	TotalAmount  float64     `json:"total_amount"`
	CreatedAt    time.Time   `json:"created_at"`
	Items        []OrderItem `json:"items,omitempty"`
}

// OrderItem mirrors the tbl_order_items table.  UnitPrice is the menu price
// at the moment the order was placed.
type OrderItem struct {
	ID        uint64  `json:"id"`
	OrderID   uint64  `json:"order_id"`
	MenuID    uint64  `json:"menu_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}
