package model

import "time"

// Customer mirrors the tbl_customers table.  Customers form an identity
// space separate from staff users and authenticate through the auth_token
// cookie.  Password carries the stored credential representation and is
// never serialized.
type Customer struct {
	ID        uint64    `json:"id"`
	Fullname  string    `json:"fullname"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
