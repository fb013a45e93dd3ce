package model

import "time"

// Menu mirrors the tbl_menus table.  Price is the current unit price; order
// line items copy it at placement time so later price edits do not rewrite
// history.
type Menu struct {
	ID           uint64    `json:"id"`
	RestaurantID uint64    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}
