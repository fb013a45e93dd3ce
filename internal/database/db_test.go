package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := Config{
		User: "app",
		Pass: "s3cret",
		Host: "db.internal",
		Port: "3307",
		Name: "orders",
	}

	parsed, err := mysql.ParseDSN(cfg.dsn())
	require.NoError(t, err)

	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "s3cret", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "orders", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, time.UTC, parsed.Loc)
	assert.Equal(t, "utf8mb4", parsed.Params["charset"])
}

func TestDSNEmptyPassword(t *testing.T) {
	cfg := Config{User: "app", Host: "localhost", Port: "3306", Name: "orders"}

	parsed, err := mysql.ParseDSN(cfg.dsn())
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Empty(t, parsed.Passwd)
	assert.True(t, parsed.ParseTime)
}
