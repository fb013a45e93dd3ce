package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nattapong/restaurant-order-api/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints: restaurants
// and their menus.  These are plain pass-through reads; the Redis response
// cache in front of them is the only extra behaviour.
type PublicHandler struct {
	Restaurants *repository.RestaurantRepo
	Menus       *repository.MenuRepo
}

func NewPublicHandler(restaurants *repository.RestaurantRepo, menus *repository.MenuRepo) *PublicHandler {
	return &PublicHandler{Restaurants: restaurants, Menus: menus}
}

// GetRestaurants lists all restaurants.
func (h *PublicHandler) GetRestaurants(c echo.Context) error {
	out, err := h.Restaurants.List(c.Request().Context())
	if err != nil {
		log.Printf("public: list restaurants failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// GetRestaurantMenus lists the menu of one restaurant.
func (h *PublicHandler) GetRestaurantMenus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Restaurants.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Restaurant not found"})
		}
		log.Printf("public: restaurant lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Query failed"})
	}
	menus, err := h.Menus.ListByRestaurant(ctx, id)
	if err != nil {
		log.Printf("public: list menus failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Query failed"})
	}
	return c.JSON(http.StatusOK, menus)
}

// GetMenu returns one menu item.
func (h *PublicHandler) GetMenu(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	m, err := h.Menus.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Menu not found"})
		}
		log.Printf("public: menu lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Query failed"})
	}
	return c.JSON(http.StatusOK, m)
}
