package ordering

import (
	"sort"
	"sync"

	"github.com/polkiloo/opeak/internal/domain/model"
)

// OrderBook is the service's view of the backend order list.
type OrderBook struct {
	mu     sync.RWMutex
	orders []model.Order
}

// NewOrderBook creates an empty order book.
func NewOrderBook() *OrderBook {
	return &OrderBook{}
}

// Replace swaps the whole list, typically after a backend fetch.
func (b *OrderBook) Replace(orders []model.Order) {
	cp := make([]model.Order, len(orders))
	copy(cp, orders)
	b.mu.Lock()
	b.orders = cp
	b.mu.Unlock()
}

// Upsert replaces the order with the same ID or appends it.
func (b *OrderBook) Upsert(o model.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].ID == o.ID {
			b.orders[i] = o
			return
		}
	}
	b.orders = append(b.orders, o)
}

// Remove drops the order with id, reporting whether it was present.
func (b *OrderBook) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].ID == id {
			b.orders = append(b.orders[:i], b.orders[i+1:]...)
			return true
		}
	}
	return false
}

// SetStatus changes the status in place and returns the previous value.
func (b *OrderBook) SetStatus(id string, status model.OrderStatus) (model.OrderStatus, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].ID == id {
			prev := b.orders[i].Status
			b.orders[i].Status = status
			return prev, true
		}
	}
	return "", false
}

// Get returns a copy of the order with id.
func (b *OrderBook) Get(id string) (model.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

// Snapshot returns a copy of the list.
func (b *OrderBook) Snapshot() []model.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	cp := make([]model.Order, len(b.orders))
	copy(cp, b.orders)
	return cp
}

// SubmittedBy returns the orders placed with email, newest first.
func SubmittedBy(orders []model.Order, email string) []model.Order {
	result := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.Email == email {
			result = append(result, o)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
