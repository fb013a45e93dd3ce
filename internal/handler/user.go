package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nattapong/restaurant-order-api/internal/auth"
	"github.com/nattapong/restaurant-order-api/internal/repository"
)

// UserHandler serves the protected staff-user endpoints.  The Verifier is
// needed because a password change takes the same hashing path as
// registration.
type UserHandler struct {
	Users    UserStore
	Verifier *auth.Verifier
}

func NewUserHandler(users UserStore, v *auth.Verifier) *UserHandler {
	return &UserHandler{Users: users, Verifier: v}
}

// List returns all staff users, newest first.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		log.Printf("users: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Query failed"})
	}
	return c.JSON(http.StatusOK, users)
}

// GetByID returns one staff user.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		log.Printf("users: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Query failed"})
	}
	return c.JSON(http.StatusOK, u)
}

type updateUserReq struct {
	Firstname *string `json:"firstname"`
	Fullname  *string `json:"fullname"`
	Lastname  *string `json:"lastname"`
	Username  *string `json:"username"`
	Status    *string `json:"status"`
	Password  *string `json:"password"`
}

// Update applies a partial staff-user update.  Absent fields stay
// untouched; a provided username or password must be non-empty.  A new
// password is hashed before it leaves this handler.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	upd := repository.UserUpdate{
		Firstname: trimmed(req.Firstname),
		Fullname:  trimmed(req.Fullname),
		Lastname:  trimmed(req.Lastname),
		Status:    req.Status,
	}
	if req.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*req.Username))
		if username == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username cannot be empty"})
		}
		upd.Username = &username
	}
	if req.Password != nil {
		if *req.Password == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password cannot be empty"})
		}
		hash, err := h.Verifier.Hash(*req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Update failed"})
		}
		upd.Password = &hash
	}
	if upd == (repository.UserUpdate{}) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Update(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Username already exists"})
		default:
			log.Printf("users: update failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Update failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated successfully"})
}

// Delete removes one staff user.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		log.Printf("users: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
