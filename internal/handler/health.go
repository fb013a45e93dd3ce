package handler // declare the package name; contains HTTP handlers

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler answers the /ping health check used by load balancers.  It
// round-trips through the database so a dead pool shows up as a 500.
type HealthHandler struct{ DB *sql.DB }

func NewHealthHandler(db *sql.DB) *HealthHandler { return &HealthHandler{DB: db} }

// Ping reports service and database health.
func (h *HealthHandler) Ping(c echo.Context) error {
	var now string
	if err := h.DB.QueryRowContext(c.Request().Context(), "SELECT NOW()").Scan(&now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "time": now})
}
