// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// OrderPlacedEvent is published after an order commits.  It carries enough
// for downstream consumers to log or notify without querying the primary
// database.
type OrderPlacedEvent struct {
	OrderID      uint64  `json:"order_id"`
	CustomerID   uint64  `json:"customer_id"`
	RestaurantID uint64  `json:"restaurant_id"`
	MenuID       uint64  `json:"menu_id"`
	Quantity     int     `json:"quantity"`
	TotalAmount  float64 `json:"total_amount"`
	PlacedAt     string  `json:"placed_at"`
}
