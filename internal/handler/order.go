package handler

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nattapong/restaurant-order-api/internal/middleware"
	"github.com/nattapong/restaurant-order-api/internal/model"
	"github.com/nattapong/restaurant-order-api/internal/repository"
	"github.com/nattapong/restaurant-order-api/internal/service"
)

// OrderReader is the read side of the order repository used by the
// handlers.  *repository.OrderRepo satisfies it.
type OrderReader interface {
	GetByIDForCustomer(ctx context.Context, orderID, customerID uint64) (model.Order, error)
	ListByCustomer(ctx context.Context, customerID uint64) ([]model.Order, error)
}

// OrderHandler serves order placement and order reads for the
// authenticated customer.  The customer id always comes from the session
// identity, never from the request body.
type OrderHandler struct {
	Service *service.OrderService
	Orders  OrderReader
}

func NewOrderHandler(svc *service.OrderService, orders OrderReader) *OrderHandler {
	return &OrderHandler{Service: svc, Orders: orders}
}

type placeOrderReq struct {
	MenuID   uint64  `json:"menu_id"`
	Quantity float64 `json:"quantity"`
}

// Place handles POST /api/orders.  Quantity arrives as a JSON number and
// must be a positive whole amount; the order service enforces positivity,
// this layer rejects fractions and non-numbers.
func (h *OrderHandler) Place(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MenuID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "menu_id is required"})
	}
	if math.IsNaN(req.Quantity) || math.IsInf(req.Quantity, 0) || req.Quantity != math.Trunc(req.Quantity) ||
		req.Quantity > math.MaxInt32 || req.Quantity < math.MinInt32 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quantity"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	order, err := h.Service.PlaceOrder(ctx, ident.ID, req.MenuID, int(req.Quantity))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quantity"})
		case errors.Is(err, repository.ErrMenuNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Menu not found"})
		default:
			// Cause stays server-side; the client gets a generic failure.
			log.Printf("orders: place failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "order creation failed"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":    order.ID,
		"total_price": order.TotalAmount,
	})
}

// ListMine returns the authenticated customer's orders.
func (h *OrderHandler) ListMine(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListByCustomer(ctx, ident.ID)
	if err != nil {
		log.Printf("orders: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Query failed"})
	}
	return c.JSON(http.StatusOK, orders)
}

// GetByID returns one of the customer's orders; foreign orders are
// indistinguishable from missing ones.
func (h *OrderHandler) GetByID(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	order, err := h.Orders.GetByIDForCustomer(ctx, id, ident.ID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		log.Printf("orders: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Query failed"})
	}
	return c.JSON(http.StatusOK, order)
}
