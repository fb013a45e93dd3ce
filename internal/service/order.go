// Package service holds the order placement transaction and its event
// publishing.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nattapong/restaurant-order-api/internal/model"
	"github.com/nattapong/restaurant-order-api/internal/queue"
	"github.com/nattapong/restaurant-order-api/internal/repository"
)

// ErrInvalidQuantity is returned for a zero or negative quantity.  Handlers
// translate it into HTTP 400.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// PricingStore resolves a menu item to its current unit price and owning
// restaurant.  *repository.MenuRepo satisfies it.
type PricingStore interface {
	GetByID(ctx context.Context, id uint64) (model.Menu, error)
}

// OrderService places orders.  Publish, when set, is called after a
// successful commit with the order event; failures there are the
// publisher's problem and never fail the placement.
type OrderService struct {
	Menus   PricingStore
	Orders  repository.OrderStore
	Publish func(ctx context.Context, ev queue.OrderPlacedEvent)
}

func NewOrderService(menus PricingStore, orders repository.OrderStore) *OrderService {
	return &OrderService{Menus: menus, Orders: orders}
}

// PlaceOrder writes an order header plus one line item as a single atomic
// unit.  customerID must come from the authenticated session, never from
// the request body.
//
// The unit price is read before the transaction opens and copied onto the
// line item; a concurrent price change between the read and the commit is
// accepted by design (the customer pays the price they saw), so no
// serializable isolation is requested.  Every failure after Begin rolls
// both inserts back; a header without its line item is never observable.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID, menuID uint64, quantity int) (model.Order, error) {
	if quantity <= 0 {
		return model.Order{}, ErrInvalidQuantity
	}

	menu, err := s.Menus.GetByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return model.Order{}, err
		}
		return model.Order{}, fmt.Errorf("load menu: %w", err)
	}

	total := menu.Price * float64(quantity)

	tx, err := s.Orders.Begin(ctx)
	if err != nil {
		return model.Order{}, fmt.Errorf("begin order transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	orderID, err := tx.InsertOrderHeader(ctx, customerID, menu.RestaurantID, total)
	if err != nil {
		return model.Order{}, fmt.Errorf("insert order header: %w", err)
	}
	if err := tx.InsertOrderLineItem(ctx, orderID, menuID, quantity, menu.Price, total); err != nil {
		return model.Order{}, fmt.Errorf("insert order line item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Order{}, fmt.Errorf("commit order: %w", err)
	}
	committed = true

	now := time.Now().UTC()
	order := model.Order{
		ID:           orderID,
		CustomerID:   customerID,
		RestaurantID: menu.RestaurantID,
		TotalAmount:  total,
		CreatedAt:    now,
		Items: []model.OrderItem{{
			OrderID:   orderID,
			MenuID:    menuID,
			Quantity:  quantity,
			UnitPrice: menu.Price,
			Subtotal:  total,
		}},
	}

	if s.Publish != nil {
		s.Publish(ctx, queue.OrderPlacedEvent{
			OrderID:      orderID,
			CustomerID:   customerID,
			RestaurantID: menu.RestaurantID,
			MenuID:       menuID,
			Quantity:     quantity,
			TotalAmount:  total,
			PlacedAt:     now.Format(time.RFC3339),
		})
	}
	return order, nil
}
