package usecase

import (
	"fmt"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
)

// User-facing messages of the order workflow.
const (
	MsgEmptyOrder      = "Please select products! Order cannot be empty."
	MsgSelectShop      = "Please select a shop."
	MsgQuantityLimit   = "You cannot order a product more then 5"
	MsgMissingPlace    = "Please enter proper information before placing the order."
	MsgPaymentMethod   = "Only cash on delivery is available."
	MsgConfirmUpdate   = "Are you sure you want to update this order?"
	MsgConfirmDelete   = "Are you sure you want to delete this order?"
	MsgOrderNotFound   = "Order data not found."
	MsgCreateFailed    = "There was an issue placing the order. Please try again."
	MsgCheckoutFailed  = "Error Placing Order"
	MsgUpdateFailed    = "Failed to update order, please try again!"
	MsgStatusFailed    = "Error updating order status"
	MsgDeleteFailed    = "Error deleting order."
	MsgInvalidStatus   = "Unknown order status."
	MsgNotOrderOwner   = "You can only change your own orders."
	MsgAdminOnly       = "Only administrators can change order status."
	MsgUnknownProduct  = "Product not found."
	MsgBadSubcategory  = "Product %s has a subcategory that is not part of its category."
	MsgBadProductCount = "Quantity must be between 1 and 5."
)

// validateLines enforces the per-line quantity range before anything is sent.
func validateLines(items []model.OrderItem) error {
	if len(items) == 0 {
		return domainErrors.Invalid(domainErrors.ErrEmptyOrder, MsgEmptyOrder)
	}
	for _, it := range items {
		if it.Quantity > model.MaxLineQuantity {
			return domainErrors.Invalid(domainErrors.ErrQuantityLimit, MsgQuantityLimit)
		}
		if it.Quantity < 1 {
			return domainErrors.Invalid(domainErrors.ErrQuantityLimit, MsgBadProductCount)
		}
	}
	return nil
}

// validateSubcategories checks that every known product's subcategory is one
// of its category's subcategories. Products without a subcategory, or whose
// category is unknown, pass.
func validateSubcategories(catalog *model.Catalog, items []model.OrderItem) error {
	for _, it := range items {
		p, ok := catalog.Product(it.ProductID)
		if !ok || p.Subcategory == "" {
			continue
		}
		cat, ok := catalog.Category(p.Category)
		if !ok {
			continue
		}
		if !cat.HasSubcategory(p.Subcategory) {
			return domainErrors.Invalid(domainErrors.ErrInvalidSubcategory, fmt.Sprintf(MsgBadSubcategory, p.Name))
		}
	}
	return nil
}
