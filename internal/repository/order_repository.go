package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nattapong/restaurant-order-api/internal/model"
)

// OrderTx is a scoped unit of work for writing an order header and its line
// items atomically.  Exactly one of Commit or Rollback must be called on
// every path; the order service guarantees that with a deferred rollback.
type OrderTx interface {
	InsertOrderHeader(ctx context.Context, customerID, restaurantID uint64, total float64) (uint64, error)
	InsertOrderLineItem(ctx context.Context, orderID, menuID uint64, quantity int, unitPrice, subtotal float64) error
	Commit() error
	Rollback() error
}

// OrderStore opens order transactions.  The interface exists so the order
// service can run against a fake store in tests.
type OrderStore interface {
	Begin(ctx context.Context) (OrderTx, error)
}

// OrderRepo provides transactional writes and plain reads for tbl_orders
// and tbl_order_items.
type OrderRepo struct{ db *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// Begin starts a database transaction for one order placement.
func (r *OrderRepo) Begin(ctx context.Context) (OrderTx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &orderTx{tx: tx}, nil
}

type orderTx struct{ tx *sql.Tx }

func (t *orderTx) InsertOrderHeader(ctx context.Context, customerID, restaurantID uint64, total float64) (uint64, error) {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO tbl_orders (customer_id, restaurant_id, total_amount) VALUES (?,?,?)`,
		customerID, restaurantID, total)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (t *orderTx) InsertOrderLineItem(ctx context.Context, orderID, menuID uint64, quantity int, unitPrice, subtotal float64) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO tbl_order_items (order_id, menu_id, quantity, unit_price, subtotal) VALUES (?,?,?,?,?)`,
		orderID, menuID, quantity, unitPrice, subtotal)
	return err
}

func (t *orderTx) Commit() error   { return t.tx.Commit() }
func (t *orderTx) Rollback() error { return t.tx.Rollback() }

// GetByIDForCustomer returns one order with its line items, restricted to
// the owning customer.  A foreign or missing order is ErrOrderNotFound.
func (r *OrderRepo) GetByIDForCustomer(ctx context.Context, orderID, customerID uint64) (model.Order, error) {
	var o model.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, customer_id, restaurant_id, total_amount, created_at
		 FROM tbl_orders WHERE id = ? AND customer_id = ?`, orderID, customerID).
		Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.TotalAmount, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	items, err := r.itemsByOrder(ctx, o.ID)
	if err != nil {
		return model.Order{}, err
	}
	o.Items = items
	return o, nil
}

// ListByCustomer returns a customer's orders with line items, newest first.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, customer_id, restaurant_id, total_amount, created_at
		 FROM tbl_orders WHERE customer_id = ? ORDER BY id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := r.itemsByOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *OrderRepo) itemsByOrder(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, menu_id, quantity, unit_price, subtotal
		 FROM tbl_order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
