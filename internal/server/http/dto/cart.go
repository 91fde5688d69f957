package dto

// CartItemRequest adds quantity units of a product; quantity defaults to 1.
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

// CheckoutRequest carries the placement and payment method of a checkout.
type CheckoutRequest struct {
	City          string `json:"city"`
	Area          string `json:"area"`
	Shop          string `json:"shop"`
	PaymentMethod string `json:"payment_method"`
}

// CartResponse describes the cart and its checkout figures.
type CartResponse struct {
	Lines      []LineResponse `json:"lines"`
	Subtotal   string         `json:"subtotal"`
	Fee        string         `json:"fee"`
	Total      string         `json:"total"`
	Diagnostic string         `json:"diagnostic,omitempty"`
}
