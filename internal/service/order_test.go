package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nattapong/restaurant-order-api/internal/model"
	"github.com/nattapong/restaurant-order-api/internal/queue"
	"github.com/nattapong/restaurant-order-api/internal/repository"
)

// ----- fakes -----

type fakePricing struct {
	menus map[uint64]model.Menu
}

func (f *fakePricing) GetByID(_ context.Context, id uint64) (model.Menu, error) {
	m, ok := f.menus[id]
	if !ok {
		return model.Menu{}, repository.ErrMenuNotFound
	}
	return m, nil
}

type committedOrder struct {
	header headerRow
	items  []itemRow
}

type headerRow struct {
	id           uint64
	customerID   uint64
	restaurantID uint64
	total        float64
}

type itemRow struct {
	orderID   uint64
	menuID    uint64
	quantity  int
	unitPrice float64
	subtotal  float64
}

// fakeOrderStore hands out transactions whose writes only become visible in
// committed when Commit succeeds, mimicking the all-or-nothing contract.
type fakeOrderStore struct {
	mu        sync.Mutex
	nextID    uint64
	committed []committedOrder

	beginErr  error
	headerErr error
	itemErr   error
	commitErr error

	begins    int
	rollbacks int
}

func (s *fakeOrderStore) Begin(context.Context) (repository.OrderTx, error) {
	s.mu.Lock()
	s.begins++
	s.mu.Unlock()
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return &fakeOrderTx{store: s}, nil
}

type fakeOrderTx struct {
	store   *fakeOrderStore
	pending committedOrder
	done    bool
}

func (t *fakeOrderTx) InsertOrderHeader(_ context.Context, customerID, restaurantID uint64, total float64) (uint64, error) {
	if t.store.headerErr != nil {
		return 0, t.store.headerErr
	}
	t.store.mu.Lock()
	t.store.nextID++
	id := t.store.nextID
	t.store.mu.Unlock()
	t.pending.header = headerRow{id: id, customerID: customerID, restaurantID: restaurantID, total: total}
	return id, nil
}

func (t *fakeOrderTx) InsertOrderLineItem(_ context.Context, orderID, menuID uint64, quantity int, unitPrice, subtotal float64) error {
	if t.store.itemErr != nil {
		return t.store.itemErr
	}
	t.pending.items = append(t.pending.items, itemRow{
		orderID: orderID, menuID: menuID, quantity: quantity, unitPrice: unitPrice, subtotal: subtotal,
	})
	return nil
}

func (t *fakeOrderTx) Commit() error {
	if t.store.commitErr != nil {
		return t.store.commitErr
	}
	t.store.mu.Lock()
	t.store.committed = append(t.store.committed, t.pending)
	t.store.mu.Unlock()
	t.done = true
	return nil
}

func (t *fakeOrderTx) Rollback() error {
	if !t.done {
		t.store.mu.Lock()
		t.store.rollbacks++
		t.store.mu.Unlock()
		t.done = true
	}
	return nil
}

func newFixture() (*OrderService, *fakeOrderStore) {
	pricing := &fakePricing{menus: map[uint64]model.Menu{
		10: {ID: 10, RestaurantID: 3, Name: "Pad Thai", Price: 12.50},
		11: {ID: 11, RestaurantID: 3, Name: "Tom Yum", Price: 8.00},
	}}
	store := &fakeOrderStore{}
	return NewOrderService(pricing, store), store
}

// ----- tests -----

func TestPlaceOrderCommitsHeaderAndItem(t *testing.T) {
	svc, store := newFixture()

	order, err := svc.PlaceOrder(context.Background(), 99, 10, 3)
	require.NoError(t, err)

	assert.Equal(t, 37.50, order.TotalAmount)
	assert.Equal(t, uint64(3), order.RestaurantID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 12.50, order.Items[0].UnitPrice)
	assert.Equal(t, 37.50, order.Items[0].Subtotal)

	require.Len(t, store.committed, 1)
	got := store.committed[0]
	assert.Equal(t, uint64(99), got.header.customerID)
	assert.Equal(t, 37.50, got.header.total)
	require.Len(t, got.items, 1)
	assert.Equal(t, got.header.id, got.items[0].orderID)
	assert.Equal(t, got.header.total, got.items[0].subtotal)
	assert.Zero(t, store.rollbacks)
}

func TestPlaceOrderRejectsNonPositiveQuantity(t *testing.T) {
	svc, store := newFixture()

	for _, qty := range []int{0, -1} {
		_, err := svc.PlaceOrder(context.Background(), 99, 10, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", qty)
	}
	assert.Zero(t, store.begins, "no transaction may start for invalid input")
	assert.Empty(t, store.committed)
}

func TestPlaceOrderUnknownMenu(t *testing.T) {
	svc, store := newFixture()

	_, err := svc.PlaceOrder(context.Background(), 99, 404, 1)
	assert.ErrorIs(t, err, repository.ErrMenuNotFound)
	assert.Zero(t, store.begins)
	assert.Empty(t, store.committed)
}

func TestPlaceOrderRollsBackOnFailure(t *testing.T) {
	cases := map[string]func(*fakeOrderStore){
		"header insert fails": func(s *fakeOrderStore) { s.headerErr = errors.New("boom") },
		"item insert fails":   func(s *fakeOrderStore) { s.itemErr = errors.New("boom") },
		"commit fails":        func(s *fakeOrderStore) { s.commitErr = errors.New("boom") },
	}
	for name, inject := range cases {
		t.Run(name, func(t *testing.T) {
			svc, store := newFixture()
			inject(store)

			_, err := svc.PlaceOrder(context.Background(), 99, 10, 2)
			require.Error(t, err)
			assert.Empty(t, store.committed, "partial order must not be visible")
			assert.Equal(t, 1, store.rollbacks)
		})
	}
}

func TestPlaceOrderPublishesEvent(t *testing.T) {
	svc, _ := newFixture()

	var published []queue.OrderPlacedEvent
	svc.Publish = func(_ context.Context, ev queue.OrderPlacedEvent) {
		published = append(published, ev)
	}

	order, err := svc.PlaceOrder(context.Background(), 99, 11, 2)
	require.NoError(t, err)

	require.Len(t, published, 1)
	assert.Equal(t, order.ID, published[0].OrderID)
	assert.Equal(t, uint64(99), published[0].CustomerID)
	assert.Equal(t, 16.00, published[0].TotalAmount)
}

func TestPlaceOrderConcurrentPlacements(t *testing.T) {
	svc, store := newFixture()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		menuID := uint64(10 + i%2)
		go func() {
			defer wg.Done()
			_, err := svc.PlaceOrder(context.Background(), 99, menuID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Every placement commits a complete header+item pair; no interleaved
	// partial state is ever visible.
	require.Len(t, store.committed, n)
	seen := map[uint64]bool{}
	for _, o := range store.committed {
		require.Len(t, o.items, 1)
		assert.Equal(t, o.header.id, o.items[0].orderID)
		assert.Equal(t, o.header.total, o.items[0].subtotal)
		assert.False(t, seen[o.header.id], "order ids must be unique")
		seen[o.header.id] = true
	}
	assert.Zero(t, store.rollbacks)
}
