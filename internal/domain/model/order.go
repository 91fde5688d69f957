package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle. Any status may follow any other.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered:
		return true
	}
	return false
}

// PaymentMethod describes how an order is paid.
type PaymentMethod string

// PaymentCashOnDelivery is the only enabled payment method.
const PaymentCashOnDelivery PaymentMethod = "cod"

// MaxLineQuantity caps the quantity of a single product per order.
const MaxLineQuantity = 5

// OrderItem is a persisted product/quantity pair.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Order is an order record owned by the backend.
type Order struct {
	ID            string
	Name          string
	Email         string
	City          string
	Area          string
	Shop          string
	Items         []OrderItem
	PaymentMethod PaymentMethod
	Price         decimal.Decimal
	Status        OrderStatus
	CreatedAt     time.Time
}

// Line is a draft or cart entry with product details snapshotted at add time.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Images    []string        `json:"images"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns price multiplied by quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineFromProduct snapshots product details into a line.
func LineFromProduct(p Product, quantity int) Line {
	images := make([]string, len(p.Images))
	copy(images, p.Images)
	return Line{ProductID: p.ID, Name: p.Name, Price: p.Price, Images: images, Quantity: quantity}
}
