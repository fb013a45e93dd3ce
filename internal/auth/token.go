package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nattapong/restaurant-order-api/internal/model"
)

// Roles carried in the token's role claim.
const (
	RoleUser     = "user"
	RoleCustomer = "customer"
)

// ErrNoSecret is returned when no signing secret is configured.  This is an
// operator error and must surface as a server failure, never as a 401.
var ErrNoSecret = errors.New("signing secret not configured")

// ErrInvalidToken covers every client-side verification failure: malformed
// token, wrong algorithm, bad signature or expired.  The kinds are
// deliberately not distinguished so responses leak nothing about which
// check failed.
var ErrInvalidToken = errors.New("invalid token")

// Token is a signed JWT together with its expiry, which callers need when
// emitting the cookie carrier (max-age must match the token TTL).
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Identity is the claim set attached to an authenticated request.  It is
// the full allowlist; fields that a principal kind does not use stay empty.
type Identity struct {
	ID       uint64
	Role     string
	Username string
	Fullname string
	Lastname string
	Status   string
}

// UserClaims builds the claim allowlist for a staff user.  Only the fields
// listed here ever enter a token; in particular the credential
// representation never does.
func UserClaims(u model.User) jwt.MapClaims {
	return jwt.MapClaims{
		"role":     RoleUser,
		"id":       u.ID,
		"fullname": u.Fullname,
		"lastname": u.Lastname,
		"status":   u.Status,
	}
}

// CustomerClaims builds the claim allowlist for a customer.
func CustomerClaims(c model.Customer) jwt.MapClaims {
	return jwt.MapClaims{
		"role":     RoleCustomer,
		"id":       c.ID,
		"username": c.Username,
		"status":   c.Status,
	}
}

// Issue signs an HS256 token carrying claims plus exp/iat.  The TTL comes
// from the caller's policy (minutes for staff, days for customers); Issue
// applies it exactly and supplies no default.
func Issue(secret string, claims jwt.MapClaims, ttl time.Duration) (Token, error) {
	if secret == "" {
		return Token{}, ErrNoSecret
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims["iat"] = now.Unix()
	claims["exp"] = exp.Unix()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// Verify validates signature and expiry and extracts the identity claims.
// It is stateless: no store access, no side effects.
func Verify(secret, raw string) (Identity, error) {
	if secret == "" {
		return Identity{}, ErrNoSecret
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	ident := Identity{
		Role:     claimString(claims, "role"),
		Username: claimString(claims, "username"),
		Fullname: claimString(claims, "fullname"),
		Lastname: claimString(claims, "lastname"),
		Status:   claimString(claims, "status"),
	}
	// JSON numbers decode as float64.
	switch v := claims["id"].(type) {
	case float64:
		ident.ID = uint64(v)
	default:
		return Identity{}, ErrInvalidToken
	}
	if ident.ID == 0 || ident.Role == "" {
		return Identity{}, ErrInvalidToken
	}
	return ident, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}
