package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nattapong/restaurant-order-api/internal/model"
)

// UserRepo provides access to the tbl_users table (staff accounts).
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a staff user and returns its ID.  The caller supplies the
// already-hashed credential; plaintext never reaches this layer on writes.
func (r *UserRepo) Create(ctx context.Context, u model.User, passwordHash string) (uint64, error) {
	username := strings.ToLower(strings.TrimSpace(u.Username))
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tbl_users (firstname, fullname, lastname, username, password) VALUES (?,?,?,?,?)`,
		u.Firstname, u.Fullname, u.Lastname, username, passwordHash)
	if err != nil {
		// MySQL 1062 = duplicate entry for a unique key
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

const userColumns = `id, firstname, fullname, lastname, username, password, status, created_at, updated_at`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var firstname, fullname, lastname sql.NullString
	err := row.Scan(&u.ID, &firstname, &fullname, &lastname, &u.Username,
		&u.Password, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.Firstname = firstname.String
	u.Fullname = fullname.String
	u.Lastname = lastname.String
	return u, nil
}

// GetByUsername fetches a staff user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM tbl_users WHERE username = ? LIMIT 1`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a staff user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM tbl_users WHERE id = ? LIMIT 1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// List returns all staff users, newest first.  Credential representations
// stay in the struct's unserialized Password field.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, firstname, fullname, lastname, username, status, created_at
		 FROM tbl_users ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		var firstname, fullname, lastname sql.NullString
		if err := rows.Scan(&u.ID, &firstname, &fullname, &lastname,
			&u.Username, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Firstname = firstname.String
		u.Fullname = fullname.String
		u.Lastname = lastname.String
		users = append(users, u)
	}
	return users, rows.Err()
}

// UserUpdate carries a partial staff-user update.  Nil fields stay
// untouched.  Password, when set, must already be a hashed representation;
// plaintext never reaches this layer on writes.
type UserUpdate struct {
	Firstname *string
	Fullname  *string
	Lastname  *string
	Username  *string
	Status    *string
	Password  *string
}

// Update applies the non-nil fields of upd to one staff user.  The caller
// guarantees at least one field is set.  A username collision maps to
// ErrUsernameExists, a missing row to ErrUserNotFound.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd UserUpdate) error {
	set := []string{}
	args := []any{}
	add := func(col string, v *string) {
		if v != nil {
			set = append(set, col+" = ?")
			args = append(args, *v)
		}
	}
	if upd.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*upd.Username))
		upd.Username = &username
	}
	add("firstname", upd.Firstname)
	add("fullname", upd.Fullname)
	add("lastname", upd.Lastname)
	add("username", upd.Username)
	add("status", upd.Status)
	add("password", upd.Password)

	query := `UPDATE tbl_users SET ` + strings.Join(set, ", ") + `, updated_at = NOW() WHERE id = ?`
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUsernameExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes one staff user.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tbl_users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored credential representation.  Used by
// the lazy hashing migration; the write is idempotent under the benign
// concurrent-login race because every writer stores a hash of the same
// presented secret.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tbl_users SET password = ?, updated_at = NOW() WHERE id = ?`, hash, id)
	return err
}
