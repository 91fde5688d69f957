package dto

import "time"

// OrderResponse describes an order with lines resolved against current products.
type OrderResponse struct {
	ID            string         `json:"_id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	City          string         `json:"city"`
	Area          string         `json:"area"`
	Shop          string         `json:"shop"`
	Lines         []LineResponse `json:"lines,omitempty"`
	PaymentMethod string         `json:"paymentMethod"`
	Price         string         `json:"price"`
	Total         string         `json:"total,omitempty"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// StatusRequest changes the status of an order.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}
