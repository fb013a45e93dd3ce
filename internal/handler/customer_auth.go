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

// CustomerStore is the slice of the customer repository the customer auth
// handlers need.  *repository.CustomerRepo satisfies it.
type CustomerStore interface {
	Create(ctx context.Context, cu model.Customer, passwordHash string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.Customer, error)
	GetByID(ctx context.Context, id uint64) (model.Customer, error)
	UpdatePassword(ctx context.Context, id uint64, hash string) error
}

// CustomerAuthHandler serves registration and login for customers.
// Customer sessions travel as an httpOnly cookie whose max-age matches the
// token TTL.
type CustomerAuthHandler struct {
	Cfg       config.Config
	Customers CustomerStore
	Verifier  *auth.Verifier
}

func NewCustomerAuthHandler(cfg config.Config, customers CustomerStore, v *auth.Verifier) *CustomerAuthHandler {
	return &CustomerAuthHandler{Cfg: cfg, Customers: customers, Verifier: v}
}

type registerCustomerReq struct {
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// sessionCookie builds the carrier cookie.  Secure is tied to the
// production environment so local development over plain HTTP still works.
func (h *CustomerAuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.Cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cfg.Env == "production",
		SameSite: http.SameSiteNoneMode,
	}
}

// Register creates a customer account.  Always hashes before insert.
func (h *CustomerAuthHandler) Register(c echo.Context) error {
	var req registerCustomerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	hash, err := h.Verifier.Hash(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Register failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cu := model.Customer{
		Fullname: strings.TrimSpace(req.Fullname),
		Username: req.Username,
		Address:  strings.TrimSpace(req.Address),
	}
	id, err := h.Customers.Create(ctx, cu, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Username already exists"})
		}
		log.Printf("customer-auth: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Register failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"ok": true,
		"customer": echo.Map{
			"id":       id,
			"username": cu.Username,
			"fullname": cu.Fullname,
		},
	})
}

// Login verifies credentials, migrates legacy plaintext rows, and emits the
// session cookie.  Failure responses are uniform 401s.
func (h *CustomerAuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cu, err := h.Customers.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		log.Printf("customer-auth: lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}

	ok, updated, err := h.Verifier.Verify(ctx, h.Customers, cu.ID, cu.Password, req.Password)
	if err != nil {
		log.Printf("customer-auth: credential verify failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}
	cu.Password = updated

	ttl := h.Cfg.CustomerTokenTTL()
	tok, err := auth.Issue(h.Cfg.JWTSecret, auth.CustomerClaims(cu), ttl)
	if err != nil {
		if errors.Is(err, auth.ErrNoSecret) {
			log.Printf("customer-auth: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server misconfigured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}

	c.SetCookie(h.sessionCookie(tok.Value, int(ttl.Seconds())))
	return c.JSON(http.StatusOK, echo.Map{
		"ok":       true,
		"customer": cu,
	})
}

// Logout clears the session cookie.
func (h *CustomerAuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Me returns the authenticated customer's current record.
func (h *CustomerAuthHandler) Me(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cu, err := h.Customers.GetByID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
		}
		log.Printf("customer-auth: load failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load customer"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "customer": cu})
}
