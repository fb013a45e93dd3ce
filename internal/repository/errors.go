// Package repository implements the durable stores behind the API.  Each
// repository wraps *sql.DB with parameterized queries only.  Sentinel
// errors defined here let handlers map failures onto the status-code
// contract without inspecting driver error text.
package repository

import "errors"

// ErrUsernameExists is returned when an insert violates the unique
// username constraint.  Handlers translate it into HTTP 409.
var ErrUsernameExists = errors.New("username already exists")

// ErrUserNotFound is returned when a staff user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrCustomerNotFound is returned when a customer lookup matches no row.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrMenuNotFound is returned when a menu item lookup matches no row.
// Handlers translate it into HTTP 404.
var ErrMenuNotFound = errors.New("menu not found")

// ErrRestaurantNotFound is returned when a restaurant lookup matches no row.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrOrderNotFound is returned when an order lookup matches no row or the
// order belongs to another customer.
var ErrOrderNotFound = errors.New("order not found")
