package model

import "time"

// Order event kinds.
const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderEvent records a change made to an order by a user.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Actor     string    `json:"actor"`
	Status    string    `json:"status,omitempty"`
	Price     string    `json:"price,omitempty"`
	Shop      string    `json:"shop,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderEvent describes order as changed by actor at now.
func NewOrderEvent(kind string, actor User, order Order, now time.Time) OrderEvent {
	e := OrderEvent{
		Type:      kind,
		OrderID:   order.ID,
		Actor:     actor.ID,
		Status:    string(order.Status),
		Shop:      order.Shop,
		Timestamp: now.UTC(),
	}
	if !order.Price.IsZero() {
		e.Price = order.Price.StringFixed(2)
	}
	return e
}
