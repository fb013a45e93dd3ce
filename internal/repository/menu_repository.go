package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nattapong/restaurant-order-api/internal/model"
)

// MenuRepo provides read access to the tbl_menus table.  GetByID is the
// pricing lookup used by order placement: it returns the current unit price
// and the owning restaurant.
type MenuRepo struct{ db *sql.DB }

func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// GetByID fetches a menu item by id.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (model.Menu, error) {
	var m model.Menu
	err := r.db.QueryRowContext(ctx,
		`SELECT id, restaurant_id, name, price, created_at FROM tbl_menus WHERE id = ? LIMIT 1`, id).
		Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Price, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Menu{}, ErrMenuNotFound
	}
	return m, err
}

// ListByRestaurant returns all menu items of one restaurant.
func (r *MenuRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Menu, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, restaurant_id, name, price, created_at FROM tbl_menus WHERE restaurant_id = ? ORDER BY id`,
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Menu{}
	for rows.Next() {
		var m model.Menu
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Price, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
