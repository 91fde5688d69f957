package ordering

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/opeak/internal/domain/model"
)

// DefaultCheckoutFee is the flat fee added on cart checkout only.
var DefaultCheckoutFee = decimal.NewFromInt(99)

// ErrMalformedCart reports stored cart content that could not be restored.
var ErrMalformedCart = errors.New("malformed cart content")

// Cart is the persisted checkout variant of a draft. Callers save the
// encoded content after every mutation.
type Cart struct {
	set        lineSet
	diagnostic string
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// DecodeCart restores a cart from stored content. Absent content yields an
// empty cart; malformed content yields an empty cart and ErrMalformedCart.
func DecodeCart(content []byte) (*Cart, error) {
	c := NewCart()
	if len(content) == 0 {
		return c, nil
	}
	var lines []model.Line
	if err := json.Unmarshal(content, &lines); err != nil {
		return c, fmt.Errorf("%w: %v", ErrMalformedCart, err)
	}
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 || c.set.index(l.ProductID) >= 0 {
			return NewCart(), fmt.Errorf("%w: invalid line %q", ErrMalformedCart, l.ProductID)
		}
		if l.Images == nil {
			l.Images = []string{}
		}
		c.set.lines = append(c.set.lines, l)
	}
	return c, nil
}

// Encode serializes the full line sequence.
func (c *Cart) Encode() ([]byte, error) {
	lines := c.set.lines
	if lines == nil {
		lines = []model.Line{}
	}
	return json.Marshal(lines)
}

// Add puts quantity units of p into the cart, refusing to exceed the cap.
func (c *Cart) Add(p model.Product, quantity int) {
	c.diagnostic = ""
	if quantity <= 0 {
		quantity = 1
	}
	if i := c.set.index(p.ID); i >= 0 {
		if c.set.lines[i].Quantity+quantity > model.MaxLineQuantity {
			c.diagnostic = MsgMaxQuantity
			return
		}
		c.set.lines[i].Quantity += quantity
		return
	}
	if quantity > model.MaxLineQuantity {
		c.diagnostic = MsgMaxQuantity
		return
	}
	c.set.lines = append(c.set.lines, model.LineFromProduct(p, quantity))
}

// Increment adds one unit to an existing line.
func (c *Cart) Increment(productID string) {
	c.diagnostic = ""
	i := c.set.index(productID)
	if i < 0 {
		return
	}
	if c.set.lines[i].Quantity >= model.MaxLineQuantity {
		c.diagnostic = MsgMaxQuantity
		return
	}
	c.set.lines[i].Quantity++
}

// Decrement removes one unit; the line disappears when it reaches zero.
func (c *Cart) Decrement(productID string) {
	c.diagnostic = ""
	i := c.set.index(productID)
	if i < 0 {
		return
	}
	c.set.lines[i].Quantity--
	if c.set.lines[i].Quantity <= 0 {
		c.set.remove(productID)
	}
}

// Remove deletes the product's line.
func (c *Cart) Remove(productID string) {
	c.diagnostic = ""
	c.set.remove(productID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.diagnostic = ""
	c.set.lines = nil
}

// Lines returns a copy of the lines.
func (c *Cart) Lines() []model.Line { return c.set.snapshot() }

// Items converts the cart to wire items.
func (c *Cart) Items() []model.OrderItem { return c.set.items() }

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.set.lines) == 0 }

// Subtotal is the sum of unit price times quantity.
func (c *Cart) Subtotal() decimal.Decimal { return c.set.total() }

// CheckoutTotal adds the flat checkout fee to the subtotal.
func (c *Cart) CheckoutTotal(fee decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(fee)
}

// Diagnostic returns the message left by the last mutation, if any.
func (c *Cart) Diagnostic() string { return c.diagnostic }

// OverLimit reports whether any line exceeds the per-product cap.
func (c *Cart) OverLimit() bool {
	for _, l := range c.set.lines {
		if l.Quantity > model.MaxLineQuantity {
			return true
		}
	}
	return false
}
