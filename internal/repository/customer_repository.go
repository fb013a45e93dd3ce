package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nattapong/restaurant-order-api/internal/model"
)

// CustomerRepo provides access to the tbl_customers table.  Customers are a
// principal space disjoint from staff users; the auth protocol is the same,
// only the store differs.
type CustomerRepo struct{ db *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// Create inserts a customer and returns its ID.  passwordHash must already
// be a bcrypt representation.
func (r *CustomerRepo) Create(ctx context.Context, c model.Customer, passwordHash string) (uint64, error) {
	username := strings.ToLower(strings.TrimSpace(c.Username))
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tbl_customers (fullname, username, password, address) VALUES (?,?,?,?)`,
		c.Fullname, username, passwordHash, c.Address)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const customerColumns = `id, fullname, username, password, address, status, created_at, updated_at`

func scanCustomer(row *sql.Row) (model.Customer, error) {
	var c model.Customer
	var fullname, address sql.NullString
	err := row.Scan(&c.ID, &fullname, &c.Username, &c.Password,
		&address, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Customer{}, err
	}
	c.Fullname = fullname.String
	c.Address = address.String
	return c, nil
}

// GetByUsername fetches a customer by normalized username.
func (r *CustomerRepo) GetByUsername(ctx context.Context, username string) (model.Customer, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM tbl_customers WHERE username = ? LIMIT 1`, username)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, ErrCustomerNotFound
	}
	return c, err
}

// GetByID fetches a customer by id.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM tbl_customers WHERE id = ? LIMIT 1`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, ErrCustomerNotFound
	}
	return c, err
}

// UpdatePassword replaces the stored credential representation for a
// customer.  See UserRepo.UpdatePassword for the migration semantics.
func (r *CustomerRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tbl_customers SET password = ?, updated_at = NOW() WHERE id = ?`, hash, id)
	return err
}
