package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nattapong/restaurant-order-api/internal/model"
)

// RestaurantRepo provides read access to the tbl_restaurants table.
type RestaurantRepo struct{ db *sql.DB }

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// List returns all restaurants ordered by id.
func (r *RestaurantRepo) List(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, address, created_at FROM tbl_restaurants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Restaurant{}
	for rows.Next() {
		var rest model.Restaurant
		var address sql.NullString
		if err := rows.Scan(&rest.ID, &rest.Name, &address, &rest.CreatedAt); err != nil {
			return nil, err
		}
		rest.Address = address.String
		out = append(out, rest)
	}
	return out, rows.Err()
}

// GetByID fetches a restaurant by id.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (model.Restaurant, error) {
	var rest model.Restaurant
	var address sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, address, created_at FROM tbl_restaurants WHERE id = ? LIMIT 1`, id).
		Scan(&rest.ID, &rest.Name, &address, &rest.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Restaurant{}, ErrRestaurantNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	rest.Address = address.String
	return rest, nil
}
