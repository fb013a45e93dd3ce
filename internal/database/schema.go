package database

import (
	"context"
	"database/sql"
)

// schema holds the CREATE TABLE statements executed at startup.  Statements
// are idempotent so restarts against an existing database are safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tbl_users (
		id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		firstname VARCHAR(100),
		fullname VARCHAR(255),
		lastname VARCHAR(100),
		username VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tbl_customers (
		id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		fullname VARCHAR(255),
		username VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		address VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tbl_restaurants (
		id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tbl_menus (
		id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		restaurant_id INT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (restaurant_id) REFERENCES tbl_restaurants(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tbl_orders (
		id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		customer_id INT UNSIGNED NOT NULL,
		restaurant_id INT UNSIGNED NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (customer_id) REFERENCES tbl_customers(id),
		FOREIGN KEY (restaurant_id) REFERENCES tbl_restaurants(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tbl_order_items (
		id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		menu_id INT UNSIGNED NOT NULL,
		quantity INT NOT NULL,
		unit_price DECIMAL(10,2) NOT NULL,
		subtotal DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES tbl_orders(id),
		FOREIGN KEY (menu_id) REFERENCES tbl_menus(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// InitSchema creates the application tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
