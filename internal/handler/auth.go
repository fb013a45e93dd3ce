package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nattapong/restaurant-order-api/internal/auth"
	"github.com/nattapong/restaurant-order-api/internal/config"
	"github.com/nattapong/restaurant-order-api/internal/middleware"
	"github.com/nattapong/restaurant-order-api/internal/model"
	"github.com/nattapong/restaurant-order-api/internal/repository"
)

// UserStore is the slice of the user repository the auth handlers need.
// *repository.UserRepo satisfies it; tests plug in a fake.
type UserStore interface {
	Create(ctx context.Context, u model.User, passwordHash string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uint64, upd repository.UserUpdate) error
	Delete(ctx context.Context, id uint64) error
	UpdatePassword(ctx context.Context, id uint64, hash string) error
}

// AuthHandler serves registration and login for staff users.  Staff
// sessions travel as Bearer access tokens in the Authorization header.
type AuthHandler struct {
	Cfg      config.Config
	Users    UserStore
	Verifier *auth.Verifier
}

func NewAuthHandler(cfg config.Config, users UserStore, v *auth.Verifier) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Verifier: v}
}

// ----- DTOs -----

type registerUserReq struct {
	Firstname string `json:"firstname"`
	Fullname  string `json:"fullname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a staff user.  The password is always hashed before the
// insert; no write path stores plaintext.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username is required"})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password is required"})
	}

	hash, err := h.Verifier.Hash(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Insert failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := model.User{
		Firstname: strings.TrimSpace(req.Firstname),
		Fullname:  strings.TrimSpace(req.Fullname),
		Lastname:  strings.TrimSpace(req.Lastname),
		Username:  req.Username,
	}
	id, err := h.Users.Create(ctx, u, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Username already exists"})
		}
		log.Printf("auth: create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Insert failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":        id,
		"firstname": u.Firstname,
		"fullname":  u.Fullname,
		"lastname":  u.Lastname,
		"username":  u.Username,
	})
}

// Login verifies credentials and returns a Bearer access token.  Unknown
// username and wrong password produce the same 401 so the response does not
// reveal which check failed.  A matching legacy plaintext credential is
// migrated to bcrypt as a side effect.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		log.Printf("auth: user lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}

	ok, updated, err := h.Verifier.Verify(ctx, h.Users, u.ID, u.Password, req.Password)
	if err != nil {
		log.Printf("auth: credential verify failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}
	// Keep the in-memory principal aligned with the store so a later
	// serialization can never leak the legacy secret.
	u.Password = updated

	tok, err := auth.Issue(h.Cfg.JWTSecret, auth.UserClaims(u), h.Cfg.UserTokenTTL())
	if err != nil {
		if errors.Is(err, auth.ErrNoSecret) {
			log.Printf("auth: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server misconfigured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   tok.Value,
		"user":    u,
	})
}

// Logout acknowledges the request.  Sessions are stateless JWTs with no
// revocation store, so logout is purely a client-side discard.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

// Me returns the authenticated staff identity from the verified claims.
func (h *AuthHandler) Me(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":       ident.ID,
		"role":     ident.Role,
		"fullname": ident.Fullname,
		"lastname": ident.Lastname,
		"status":   ident.Status,
	})
}
