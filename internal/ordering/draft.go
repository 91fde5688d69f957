package ordering

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/opeak/internal/domain/model"
)

// Diagnostics shown next to the composition surface.
const (
	MsgMaxQuantity      = "Maximum quantity of 5 reached."
	MsgNegativeQuantity = "Quantity cannot be negative."
)

// Draft is an in-progress order. Quantities stay within [1, MaxLineQuantity];
// violations leave the draft unchanged and set a diagnostic instead of failing.
// Draft is not safe for concurrent use; see DraftRegistry.
type Draft struct {
	set        lineSet
	diagnostic string
}

// NewDraft creates an empty draft.
func NewDraft() *Draft {
	return &Draft{}
}

// NewDraftFromLines seeds a draft, e.g. from a persisted order being edited.
func NewDraftFromLines(lines []model.Line) *Draft {
	d := &Draft{}
	for _, l := range lines {
		if l.Quantity <= 0 || d.set.index(l.ProductID) >= 0 {
			continue
		}
		d.set.lines = append(d.set.lines, l)
	}
	return d
}

// Add puts one more unit of p into the draft.
func (d *Draft) Add(p model.Product) {
	d.diagnostic = ""
	if i := d.set.index(p.ID); i >= 0 {
		if d.set.lines[i].Quantity >= model.MaxLineQuantity {
			d.diagnostic = MsgMaxQuantity
			return
		}
		d.set.lines[i].Quantity++
		return
	}
	d.set.lines = append(d.set.lines, model.LineFromProduct(p, 1))
}

// SetQuantity sets the quantity of an existing line; zero removes it.
// Products without a line are left alone.
func (d *Draft) SetQuantity(productID string, n int) {
	d.diagnostic = ""
	switch {
	case n == 0:
		d.set.remove(productID)
		return
	case n < 0:
		d.diagnostic = MsgNegativeQuantity
		return
	}
	i := d.set.index(productID)
	if i < 0 {
		return
	}
	if n > model.MaxLineQuantity {
		d.diagnostic = MsgMaxQuantity
		return
	}
	d.set.lines[i].Quantity = n
}

// Remove deletes the product's line unconditionally.
func (d *Draft) Remove(productID string) {
	d.diagnostic = ""
	d.set.remove(productID)
}

// Clear discards every line.
func (d *Draft) Clear() {
	d.diagnostic = ""
	d.set.lines = nil
}

// Line returns the line for productID.
func (d *Draft) Line(productID string) (model.Line, bool) {
	if i := d.set.index(productID); i >= 0 {
		return d.set.lines[i], true
	}
	return model.Line{}, false
}

// Lines returns a copy of the lines in insertion order.
func (d *Draft) Lines() []model.Line { return d.set.snapshot() }

// Items converts the draft to wire items.
func (d *Draft) Items() []model.OrderItem { return d.set.items() }

// Len returns the number of lines.
func (d *Draft) Len() int { return len(d.set.lines) }

// Empty reports whether the draft has no lines.
func (d *Draft) Empty() bool { return len(d.set.lines) == 0 }

// Total is the sum of unit price times quantity.
func (d *Draft) Total() decimal.Decimal { return d.set.total() }

// Diagnostic returns the message left by the last mutation, if any.
func (d *Draft) Diagnostic() string { return d.diagnostic }

// SetDiagnostic records a user-facing message, e.g. a failed submission.
func (d *Draft) SetDiagnostic(msg string) { d.diagnostic = msg }

// DraftFromOrder opens the edit surface of a persisted order. Lines are
// rebuilt with current product prices.
func DraftFromOrder(o model.Order, lookup func(string) (model.Product, bool)) *Draft {
	return NewDraftFromLines(ResolveLines(o.Items, lookup))
}
