package dto

// OpenDraftRequest opens an empty draft or, with OrderID, the edit surface
// of an existing order.
type OpenDraftRequest struct {
	OrderID string `json:"order_id"`
}

// DraftItemRequest adds one unit of a product.
type DraftItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// QuantityRequest sets a line quantity. Zero removes the line.
type QuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SubmitDraftRequest names the shop the order is delivered to.
type SubmitDraftRequest struct {
	Shop string `json:"shop"`
}

// ApplyDraftRequest confirms an edit.
type ApplyDraftRequest struct {
	Confirm bool `json:"confirm"`
}

// LineResponse is a draft or cart line.
type LineResponse struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Images    []string `json:"images"`
	Quantity  int      `json:"quantity"`
	Subtotal  string   `json:"subtotal"`
}

// DraftResponse describes a draft.
type DraftResponse struct {
	ID         string         `json:"id"`
	OrderID    string         `json:"order_id,omitempty"`
	Lines      []LineResponse `json:"lines"`
	Total      string         `json:"total"`
	Diagnostic string         `json:"diagnostic,omitempty"`
}
