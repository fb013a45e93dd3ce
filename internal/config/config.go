package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration.  Every value is read once at
// startup and passed into components explicitly; core logic never reads the
// environment on its own.
type Config struct {
	Env                  string // application environment ("dev", "production")
	Port                 string // HTTP port to listen on
	DBUser               string // database username
	DBPass               string // database password (optional)
	DBHost               string // database host address
	DBPort               string // database port number
	DBName               string // database name
	DBMaxOpenConns       int    // connection pool upper bound
	DBMaxIdleConns       int    // idle connections kept around
	DBConnMaxLifetime    time.Duration
	JWTSecret            string // secret used to sign session tokens
	UserTokenTTLMin      int    // staff access token time-to-live in minutes
	CustomerTokenTTLDays int    // customer cookie token time-to-live in days
	BcryptCost           int    // bcrypt cost for password hashing
	CookieName           string // name of the customer session cookie
}

// UserTokenTTL returns the staff token lifetime as a duration.
func (c Config) UserTokenTTL() time.Duration {
	return time.Duration(c.UserTokenTTLMin) * time.Minute
}

// CustomerTokenTTL returns the customer token lifetime as a duration.
func (c Config) CustomerTokenTTL() time.Duration {
	return time.Duration(c.CustomerTokenTTLDays) * 24 * time.Hour
}

// Load reads configuration from environment variables.  Missing required
// values abort startup with a fatal log; a deployment without a signing
// secret must never come up half-configured.
func Load() Config {
	return Config{
		Env:                  must("APP_ENV"),
		Port:                 must("APP_PORT"),
		DBUser:               must("DB_USER"),
		DBPass:               os.Getenv("DB_PASS"),
		DBHost:               must("DB_HOST"),
		DBPort:               must("DB_PORT"),
		DBName:               must("DB_NAME"),
		DBMaxOpenConns:       envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       envInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetime:    envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		JWTSecret:            must("JWT_SECRET"),
		UserTokenTTLMin:      mustInt("USER_TOKEN_TTL_MIN"),
		CustomerTokenTTLDays: mustInt("CUSTOMER_TOKEN_TTL_DAYS"),
		BcryptCost:           mustInt("BCRYPT_COST"),
		CookieName:           getenv("AUTH_COOKIE_NAME", "auth_token"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
