package model

import "time"

// Restaurant mirrors the tbl_restaurants table.
type Restaurant struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
