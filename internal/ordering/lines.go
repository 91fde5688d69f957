package ordering

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/opeak/internal/domain/model"
)

// UnknownProduct labels lines whose product is no longer in the catalog.
const UnknownProduct = "Unknown"

// lineSet is an ordered sequence of lines unique by product identifier.
type lineSet struct {
	lines []model.Line
}

func (s *lineSet) index(productID string) int {
	for i, l := range s.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *lineSet) remove(productID string) {
	if i := s.index(productID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

func (s *lineSet) snapshot() []model.Line {
	out := make([]model.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *lineSet) items() []model.OrderItem {
	items := make([]model.OrderItem, 0, len(s.lines))
	for _, l := range s.lines {
		items = append(items, model.OrderItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return items
}

func (s *lineSet) total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Sum returns the sum of price times quantity over lines.
func Sum(lines []model.Line) decimal.Decimal {
	s := lineSet{lines: lines}
	return s.total()
}

// ResolveLines rebuilds display lines for persisted items using current
// product prices. Missing products yield an "Unknown" line priced at zero.
func ResolveLines(items []model.OrderItem, lookup func(string) (model.Product, bool)) []model.Line {
	lines := make([]model.Line, 0, len(items))
	for _, it := range items {
		p, ok := lookup(it.ProductID)
		if !ok {
			lines = append(lines, model.Line{ProductID: it.ProductID, Name: UnknownProduct, Price: decimal.Zero, Images: []string{}, Quantity: it.Quantity})
			continue
		}
		lines = append(lines, model.LineFromProduct(p, it.Quantity))
	}
	return lines
}
