package model

import "time"

// User mirrors the tbl_users table.  Users are staff accounts that
// authenticate with a Bearer access token.  The Password field holds the
// stored credential representation: either a bcrypt hash or, for rows that
// predate hashing, the original plaintext secret awaiting migration.
type User struct {
	ID        uint64    `json:"id"`
	Firstname string    `json:"firstname"`
	Fullname  string    `json:"fullname"`
	Lastname  string    `json:"lastname"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
