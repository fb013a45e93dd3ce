package database

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config describes the MySQL connection and pool sizing.  Pool limits come
// from the environment so a deployment can tune them without a rebuild.
type Config struct {
	User string
	Pass string
	Host string
	Port string
	Name string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// dsn builds the connection string through the driver's own config type.
// ParseTime makes DATETIME/TIMESTAMP columns scan into time.Time; Loc pins
// them to UTC so order timestamps compare consistently across replicas.
func (c Config) dsn() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, c.Port)
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Open connects to MySQL, applies the pool limits and verifies the
// connection with a short ping so a dead database fails startup instead of
// the first request.
func Open(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.dsn())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
